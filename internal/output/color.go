package output

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
)

var colorRx *regexp.Regexp

func init() {
	var err error
	colorRx, err = regexp.Compile(`\[(BOLD|UNDERLINE|BLACK|RED|GREEN|YELLOW|BLUE|MAGENTA|CYAN|WHITE|INFO|/RESET)(!?)\]`)
	if err != nil {
		panic(fmt.Sprintf("Could not compile regex: %v", err))
	}
}

// colorAttrs maps a color tag to its regular and its bright attributes
var colorAttrs = map[string][2][]color.Attribute{
	`BOLD`:      {{color.Bold}, {color.Bold}},
	`UNDERLINE`: {{color.Underline}, {color.Underline}},
	`BLACK`:     {{color.FgBlack}, {color.FgHiBlack}},
	`RED`:       {{color.FgRed}, {color.FgHiRed}},
	`GREEN`:     {{color.FgGreen}, {color.FgHiGreen}},
	`YELLOW`:    {{color.FgYellow}, {color.FgHiYellow}},
	`BLUE`:      {{color.FgBlue}, {color.FgHiBlue}},
	`MAGENTA`:   {{color.FgMagenta}, {color.FgHiMagenta}},
	`CYAN`:      {{color.FgCyan}, {color.FgHiCyan}},
	`WHITE`:     {{color.FgWhite}, {color.FgHiWhite}},
	`INFO`:      {{color.FgBlue, color.Bold}, {color.FgHiBlue, color.Bold}},
}

// writeColorized will replace `[COLORNAME]foo[/RESET]` with shell colors, or strip color tags if stripColors=true
func writeColorized(value string, writer io.Writer, stripColors bool) error {
	pos := 0
	var attrs []color.Attribute
	for _, match := range colorRx.FindAllStringSubmatchIndex(value, -1) {
		if err := writeSegment(writer, value[pos:match[0]], attrs, stripColors); err != nil {
			return err
		}

		name := value[match[2]:match[3]]
		if name == `/RESET` {
			attrs = nil
		} else {
			brighten := match[5] > match[4]
			i := 0
			if brighten {
				i = 1
			}
			attrs = append(attrs, colorAttrs[name][i]...)
		}

		pos = match[1]
	}

	return writeSegment(writer, value[pos:], attrs, stripColors)
}

func writeSegment(writer io.Writer, text string, attrs []color.Attribute, stripColors bool) error {
	if text == "" {
		return nil
	}
	if stripColors || len(attrs) == 0 {
		_, err := io.WriteString(writer, text)
		return err
	}

	c := color.New(attrs...)
	c.EnableColor()
	_, err := io.WriteString(writer, c.Sprint(text))
	return err
}

// StripColorCodes strips color codes from a string
func StripColorCodes(value string) string {
	return colorRx.ReplaceAllString(value, "")
}
