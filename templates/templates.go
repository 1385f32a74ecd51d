// Package templates embeds the HTML views and static assets of the app.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/K9173A/todoapp/models"
)

//go:embed html/*.html
var htmlFS embed.FS

//go:embed static
var staticFS embed.FS

// Names of the templates rendered by the handlers.
const (
	Index      = "index.html"
	TasksList  = "tasks_list.html"
	Pagination = "pagination.html"
	CreateForm = "create_task_form.html"
	UpdateForm = "update_task_form.html"
	Error      = "error.html"
)

// New parses every embedded view.
func New() *template.Template {
	funcs := template.FuncMap{
		"statusChoices":   func() []models.Choice { return models.StatusChoices },
		"priorityChoices": func() []models.Choice { return models.PriorityChoices },
	}
	return template.Must(template.New("views").Funcs(funcs).ParseFS(htmlFS, "html/*.html"))
}

// Static serves the embedded css and js under their directory names.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Render executes the named template into a string, for JSON fragments.
func Render(t *template.Template, name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
