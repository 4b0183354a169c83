package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
	Sender  string
}

type followUpEmailData struct {
	baseEmailData
	ContactName string
	Paragraphs  []string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// paragraphs splits a plain-text message on blank lines. Single line breaks
// inside a paragraph are kept as spaces.
func paragraphs(message string) []string {
	normalized := strings.ReplaceAll(message, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(normalized, "\n\n") {
		text := strings.Join(strings.Fields(block), " ")
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}
