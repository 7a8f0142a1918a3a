package output

import "strings"

// Heading is rendered as an underlined title in plain output
type Heading string

var _ Marshaller = Heading("")

func (h Heading) String() string {
	return string(h)
}

func (h Heading) MarshalOutput(f Format) interface{} {
	if f != PlainFormatName {
		return string(h)
	}
	return "\n[BOLD]" + string(h) + "[/RESET]\n" + strings.Repeat("=", len([]rune(string(h))))
}
