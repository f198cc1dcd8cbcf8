package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date": func(d CustomDate) string {
		if d.IsZero() {
			return "-"
		}
		return d.Format("02 Jan 2006")
	},
	"safeURL": func(s string) template.URL { return template.URL(s) },
	"inc":     func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// RenderTemplate render một template html đã embed
func RenderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
