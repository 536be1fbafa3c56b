package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/example/reset-timer/internal/domain/reset"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"pad2":  func(n int) string { return fmt.Sprintf("%02d", n) },
	"clock": reset.FormatClock,
}

// ParseTemplates parses every embedded page. Templates are addressed by file name.
func ParseTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}
