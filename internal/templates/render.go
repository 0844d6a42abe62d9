package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

// RenderTemplateBody renders the template body with provided data and the
// pagination helpers.
func RenderTemplateBody(bodyTemplate string, data map[string]any, th pagination.Thresholds) (string, error) {
	tpl, err := template.New("body").Funcs(FuncMap(th)).Option("missingkey=error").Parse(bodyTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template body: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, withBuiltinTemplateData(data)); err != nil {
		return "", fmt.Errorf("render template body: %w", err)
	}
	return buf.String(), nil
}
