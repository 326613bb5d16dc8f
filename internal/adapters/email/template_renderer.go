package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"
	"time"

	"fieldbooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each template name maps to three files: <name>_subject.txt, <name>.html and <name>.txt.
var templateNames = []string{"welcome", "reservation_received"}

var funcs = map[string]any{
	"datetime": func(t time.Time) string { return t.UTC().Format("Mon 02 Jan 2006 15:04 MST") },
}

type templateSet struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// templateRenderer implements domain.EmailTemplateRenderer over templates parsed once from the embedded folder.
type templateRenderer struct {
	sets map[string]templateSet
}

// NewTemplateRenderer parses every embedded template and fails if any is missing or malformed.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	return newTemplateRenderer(templateFS, templateNames)
}

func newTemplateRenderer(fsys fs.FS, names []string) (*templateRenderer, error) {
	r := &templateRenderer{sets: make(map[string]templateSet, len(names))}
	for _, name := range names {
		subject, err := parseText(fsys, name+"_subject.txt")
		if err != nil {
			return nil, err
		}
		text, err := parseText(fsys, name+".txt")
		if err != nil {
			return nil, err
		}
		html, err := htmltemplate.New(name + ".html").Funcs(funcs).ParseFS(fsys, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s.html: %w", name, err)
		}
		r.sets[name] = templateSet{subject: subject, html: html, text: text}
	}
	return r, nil
}

func parseText(fsys fs.FS, file string) (*texttemplate.Template, error) {
	t, err := texttemplate.New(file).Funcs(funcs).ParseFS(fsys, "templates/"+file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return t, nil
}

// Render executes the named template (e.g. "welcome") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	set, ok := r.sets[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	var buf bytes.Buffer
	if err := set.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := set.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := set.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	textBody = buf.String()
	return subject, htmlBody, textBody, nil
}
