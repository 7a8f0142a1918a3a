package locale

import (
	"bytes"
	"embed"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/nicksnyder/go-i18n/i18n"
	"github.com/thoas/go-funk"

	"github.com/ActiveState/rtscope/internal/logging"
)

// Supported languages
var Supported = []string{"en-US"}

// DefaultLocale is used whenever no other (supported) locale is requested
const DefaultLocale = "en-US"

//go:embed translations/*.yaml
var translations embed.FS

var translateFunction i18n.TranslateFunc

func init() {
	for _, name := range Supported {
		filename := strings.ToLower(name) + ".yaml"
		data, err := translations.ReadFile(path.Join("translations", filename))
		if err != nil {
			logging.Warning("Could not read translations for %s: %v", name, err)
			continue
		}
		if err := i18n.ParseTranslationFileBytes(filename, data); err != nil {
			logging.Warning("Could not parse translations for %s: %v", name, err)
		}
	}

	Set(DefaultLocale)
}

// Set the active language to the given locale, unsupported locales fall back to the default
func Set(localeName string) {
	if !funk.ContainsString(Supported, localeName) {
		logging.Warning("Locale does not exist: %s, falling back to %s", localeName, DefaultLocale)
		localeName = DefaultLocale
	}

	tfunc, err := i18n.Tfunc(localeName)
	if err != nil {
		logging.Warning("Could not load locale %s: %v", localeName, err)
		tfunc = func(translationID string, args ...interface{}) string { return translationID }
	}
	translateFunction = tfunc
}

// T aliases to i18n.Tfunc()
func T(translationID string, args ...interface{}) string {
	return translateFunction(translationID, args...)
}

// Tr is like T but accepts string params that will be used as numbered params, eg. V0, V1, V2 etc
func Tr(translationID string, values ...string) string {
	return T(translationID, templateArgs(values))
}

// Tl is like Tr, but also accepts a locale (fallback) string that is used if the translation ID does not exist
func Tl(translationID, locale string, values ...string) string {
	args := templateArgs(values)
	translation := T(translationID, args)
	if translation != translationID {
		return translation
	}

	tpl, err := template.New(translationID).Parse(locale)
	if err != nil {
		logging.Warning("Could not parse fallback for %s: %v", translationID, err)
		return locale
	}
	out := bytes.Buffer{}
	if err := tpl.Execute(&out, args); err != nil {
		logging.Warning("Could not render fallback for %s: %v", translationID, err)
		return locale
	}
	return out.String()
}

func templateArgs(values []string) map[string]interface{} {
	args := map[string]interface{}{}
	for k, v := range values {
		args["V"+strconv.Itoa(k)] = v
	}
	return args
}
