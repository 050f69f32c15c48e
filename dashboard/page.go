// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Page is the data behind one dashboard page.
type Page struct {
	Views    []View
	View     View
	Figure   *Figure
	NotFound bool
}

// RenderPage writes the navigation links followed by the figure, or by the
// "404" placeholder when the page is not found.
func RenderPage(w io.Writer, p Page) error {
	if p.Views == nil {
		p.Views = Views
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
