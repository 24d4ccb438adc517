package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/web"
)

// Renderer serves the embedded HTML templates through echo.Context.Render.
// Template names are the base file names, e.g. "login.html".
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(web.Templates, "templates/*.html")),
	}
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
