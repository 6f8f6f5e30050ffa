package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"derefString": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
}).ParseFS(templateFS, "templates/*.html"))

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error("render template", "template", name, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
