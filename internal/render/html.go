package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Page is everything the HTML gallery page shows.
type Page struct {
	Title   string
	Text    string
	Style   string
	Styles  []string
	Status  string
	Gallery Gallery
	Details *Details
	Theme   Theme

	// Palette colors the page. The zero value selects the default palette.
	Palette Palette
}

// HTML renders gallery pages as HTML documents.
//
// Artwork descriptions are treated as Markdown and sanitized before they
// reach the page; every other field is escaped by html/template.
type HTML struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewHTML parses the embedded page template.
func NewHTML() (*HTML, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/gallery.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing gallery template: %w", err)
	}
	return &HTML{
		tmpl:     tmpl,
		markdown: goldmark.New(),
		policy:   newDescriptionPolicy(),
	}, nil
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AllowAttrs("class").OnElements("p", "span")
	return policy
}

type styleOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Page
	Palette     Palette
	StyleIsAll  bool
	Styles      []styleOption
	Description template.HTML
}

// Render writes the page to w.
func (h *HTML) Render(w io.Writer, p Page) error {
	data := pageData{
		Page:       p,
		Palette:    p.Palette,
		StyleIsAll: p.Style == "" || strings.EqualFold(p.Style, "all"),
	}
	if data.Palette == (Palette{}) {
		data.Palette = DefaultPalette()
	}
	if data.Title == "" {
		data.Title = "Art Gallery"
	}

	for _, style := range p.Styles {
		value := strings.ToLower(style)
		data.Styles = append(data.Styles, styleOption{
			Value:    value,
			Label:    style,
			Selected: strings.EqualFold(p.Style, value),
		})
	}

	if p.Details != nil {
		desc, err := h.Description(p.Details.Field("Description"))
		if err != nil {
			return err
		}
		data.Description = desc
	}

	return h.tmpl.ExecuteTemplate(w, "gallery.html.tmpl", data)
}

// Description converts a Markdown description into sanitized HTML.
func (h *HTML) Description(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering description: %w", err)
	}
	// Sanitized by the UGC policy, so safe to mark as trusted HTML
	return template.HTML(h.policy.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // G203: sanitized above
}
