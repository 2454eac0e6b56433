package diro_installer

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/diro-app/diro_installer/log"
)

type StringMap map[string]string

var templateFunctions = template.FuncMap{
	"replace": func(from, to, input string) string { return strings.Replace(input, from, to, -1) },
	"trim":    func(input string) string { return strings.Trim(input, " \r\n\t") },
	"upper":   func(input string) string { return strings.ToUpper(input) },
	"lower":   func(input string) string { return strings.ToLower(input) },
}

// ExpandVariables takes a string with template variables like {{.var}} and expands them
// with the given map. If the template is broken, the error is logged and the string is
// returned unchanged.
func ExpandVariables(str string, variables StringMap) (expanded string) {
	expanded, err := ExpandVariablesStrict(str, variables)
	if err != nil {
		log.L.Warn(err)
		return str
	}
	return expanded
}

// ExpandVariablesStrict is ExpandVariables, but returns template errors instead of
// falling back to the raw string.
func ExpandVariablesStrict(str string, variables StringMap) (string, error) {
	templ, err := template.New("").Funcs(templateFunctions).Parse(str)
	if err != nil {
		return "", errors.Wrap(err, "invalid string template")
	}
	var buf bytes.Buffer
	if err = templ.Execute(&buf, variables); err != nil {
		return "", errors.Wrap(err, "error executing template")
	}
	return buf.String(), nil
}

// MergeVariables combines several variable maps into a single one. Duplicate keys will
// be overridden by the value in the last map which has the key.
func MergeVariables(varMaps ...StringMap) StringMap {
	merged := make(StringMap)
	for _, vars := range varMaps {
		for k, v := range vars {
			merged[k] = v
		}
	}
	return merged
}
