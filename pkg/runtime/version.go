package runtime

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"

	"github.com/ActiveState/rtscope/internal/errs"
)

// Version is the version of a runtime, eg. 2.7.18
type Version struct {
	v *goversion.Version
}

// ParseVersion parses a version string such as "3.6" or "2.7.18"
func ParseVersion(v string) (*Version, error) {
	parsed, err := goversion.NewVersion(v)
	if err != nil {
		return nil, errs.Wrap(err, "Invalid version: %s", v)
	}
	return &Version{parsed}, nil
}

// MustParseVersion is like ParseVersion but panics on invalid input, it is meant for literals
func MustParseVersion(v string) *Version {
	parsed, err := ParseVersion(v)
	if err != nil {
		panic(err)
	}
	return parsed
}

func (v *Version) segment(i int) int {
	segments := v.v.Segments()
	if i >= len(segments) {
		return 0
	}
	return segments[i]
}

// Major returns the major version
func (v *Version) Major() int {
	return v.segment(0)
}

// Minor returns the minor version
func (v *Version) Minor() int {
	return v.segment(1)
}

// XY returns the major.minor representation, eg. "2.7"
func (v *Version) XY() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Compare returns -1, 0 or 1 depending on whether v is smaller, equal or larger than other
func (v *Version) Compare(other *Version) int {
	return v.v.Compare(other.v)
}

// LessThan tests whether v is smaller than other
func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// Satisfies checks v against a constraint such as ">= 2.6, < 3"
func (v *Version) Satisfies(constraint string) (bool, error) {
	c, err := goversion.NewConstraint(constraint)
	if err != nil {
		return false, errs.Wrap(err, "Invalid version constraint: %s", constraint)
	}
	return c.Check(v.v), nil
}

func (v *Version) String() string {
	return v.v.String()
}
