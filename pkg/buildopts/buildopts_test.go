package buildopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(o *Options)
		runtime  string
		excluded bool
	}{
		{
			"Optional not requested",
			func(o *Options) { o.Optional("python3") },
			"python3", true,
		},
		{
			"Optional requested",
			func(o *Options) { o.Optional("python3"); o.With("python3") },
			"python3", false,
		},
		{
			"Optional with without requested",
			func(o *Options) { o.Optional("python3"); o.Without("python3") },
			"python3", true,
		},
		{
			"Recommended not requested",
			func(o *Options) { o.Recommended("python") },
			"python", false,
		},
		{
			"Recommended opted out",
			func(o *Options) { o.Recommended("python"); o.Without("python") },
			"python", true,
		},
		{
			"Undefined",
			func(o *Options) {},
			"python", false,
		},
		{
			"Undefined opted out",
			func(o *Options) { o.Request("--without-python") },
			"python", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			tt.setup(o)
			assert.Equal(t, tt.excluded, o.IsExcluded(tt.runtime))
		})
	}
}

func TestRequest(t *testing.T) {
	o := New("--with-python3", "without-python", "with-python3", " ", "")
	assert.Equal(t, []string{"with-python3", "without-python"}, o.Requested())
	assert.True(t, o.IsRequested("with-python3"))
	assert.False(t, o.IsRequested("with-python"))
}

func TestDefine(t *testing.T) {
	o := New()
	o.Optional("python3", "python3")
	o.Recommended("python")
	assert.Equal(t, []string{"with-python3", "without-python"}, o.Defined())
	assert.True(t, o.IsDefined("without-python"))
}
