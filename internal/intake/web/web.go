// Package web renders the intake pages. Handlers build plain view models;
// rendering stays independent of workflow logic so either can be tested on
// its own.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// FormPage is the view model for the collection form.
type FormPage struct {
	Title       string
	Heading     string
	Flash       string
	CSRFToken   string
	Data        models.RawFields
	Departments []string
}

// PreviewPage is the view model for the read-only confirmation view.
type PreviewPage struct {
	Title     string
	Heading   string
	CSRFToken string
	Data      models.Submission
}

// SuccessPage is the view model for the post-submit view.
type SuccessPage struct {
	Title   string
	Heading string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tpl: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (rn *Renderer) Form(w io.Writer, p FormPage) error {
	return rn.render(w, "form.html", p)
}

func (rn *Renderer) Preview(w io.Writer, p PreviewPage) error {
	return rn.render(w, "preview.html", p)
}

func (rn *Renderer) Success(w io.Writer, p SuccessPage) error {
	return rn.render(w, "success.html", p)
}

// render buffers the page so a template failure never leaves a half-written
// response body.
func (rn *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := rn.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
