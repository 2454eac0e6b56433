package diro_installer

import (
	"regexp"
	"sort"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/diro-app/diro_installer/log"
)

const (
	DefaultLanguage string = "en"
	displayKey             = "_language_display"
	languagesDir           = "languages"
)

var languageFileRegexp = regexp.MustCompile(`.*/([^/]+)\.ya?ml$`)

type Translator struct {
	language    string
	langStrings map[string]StringMap
	variables   StringMap
}

// NewTranslator returns a Translator without any variable lookup.
func NewTranslator() (*Translator, error) {
	return NewTranslatorVar(StringMap{})
}

// NewTranslatorVar returns a Translator with a variable lookup. It scans for any yaml
// files inside the languages folder in the resources box. The initial language is
// matched against the system locale, falling back to DefaultLanguage.
func NewTranslatorVar(variables StringMap) (*Translator, error) {
	languageFiles, err := GetResourceFiltered(languagesDir, languageFileRegexp)
	if err != nil {
		return nil, err
	}
	languages := make(map[string]StringMap)
	for filename, content := range languageFiles {
		languageTag := languageFileRegexp.ReplaceAllString(filename, "$1")
		langStrings := make(StringMap)
		err := yaml.Unmarshal([]byte(content), langStrings)
		if err != nil {
			log.L.Warnf("Unable to parse language file %s: %s", filename, err)
			continue
		}
		languages[languageTag] = langStrings
	}
	if _, ok := languages[DefaultLanguage]; !ok {
		return nil, errors.Errorf("no strings for default language '%s'", DefaultLanguage)
	}
	t := Translator{
		langStrings: languages,
		variables:   variables,
	}
	if err := t.SetLanguage(t.getLocale()); err != nil {
		t.language = DefaultLanguage
	}
	return &t, nil
}

// Get returns the localized string for a given string key, with template variables
// expanded.
func (t *Translator) Get(key string) string {
	return t.GetVar(key, nil)
}

// GetVar is Get with additional variables, which take precedence over the
// translator's own.
func (t *Translator) GetVar(key string, variables StringMap) string {
	return ExpandVariables(t.getRaw(key, t.language), MergeVariables(t.variables, variables))
}

// GetLanguage returns the identifier (e.g. "en") for the current language.
func (t *Translator) GetLanguage() string { return t.language }

// GetLanguages returns a list of identifiers for all available languages. The default
// language will be the first in the list, the rest is sorted alphabetically.
func (t *Translator) GetLanguages() (languages []string) {
	for lang := range t.langStrings {
		if lang != DefaultLanguage {
			languages = append(languages, lang)
		}
	}
	sort.Strings(languages)
	return append([]string{DefaultLanguage}, languages...)
}

// GetDisplayName returns the name of the given language, in that language.
func (t *Translator) GetDisplayName(language string) string {
	return t.getRaw(displayKey, language)
}

// SetLanguage given a language code string (e.g.: "en"), sets the translator's
// language.
func (t *Translator) SetLanguage(language string) error {
	if _, ok := t.langStrings[language]; !ok {
		return errors.Errorf("no language '%s'", language)
	}
	t.language = language
	return nil
}

// SetVariable adds or replaces a variable available to all strings.
func (t *Translator) SetVariable(key, value string) {
	t.variables = MergeVariables(t.variables, StringMap{key: value})
}

// getLocale returns the current system locale, as a language code string (e.g.:
// "en").
func (t *Translator) getLocale() string {
	languageTags := []language.Tag{language.Raw.Make(DefaultLanguage)}
	for languageTag := range t.langStrings {
		if languageTag != DefaultLanguage && languageTag != "" {
			languageTags = append(languageTags, language.Raw.Make(languageTag))
		}
	}
	locale, err := jibber_jabber.DetectIETF()
	if err != nil {
		return DefaultLanguage
	}
	_, index, _ := language.NewMatcher(languageTags).Match(language.Make(locale))
	base, _ := languageTags[index].Base()
	return base.String()
}

// getRaw returns a localized string for a given string key in a given language, without
// template expansion. If the language doesn't have the string, then the default
// language is tried. If that fails as well, the key itself is returned.
func (t *Translator) getRaw(key, language string) string {
	if langStrings, ok := t.langStrings[language]; ok {
		if value, ok := langStrings[key]; ok {
			return value
		}
	}
	if value, ok := t.langStrings[DefaultLanguage][key]; ok {
		return value
	}
	return key
}
