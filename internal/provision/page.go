package provision

import (
	_ "embed"
	"html/template"
	"io"

	"fake-auth/internal/models"
)

//go:embed template.html
var indexTemplateSource string

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateSource))

// RenderIndex writes the landing page listing a login link for every user.
func RenderIndex(w io.Writer, users []models.User) error {
	return indexTemplate.Execute(w, struct {
		Users []models.User
	}{Users: users})
}
