package share

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

var emailTemplate = template.Must(
	template.New("email.html").
		Funcs(template.FuncMap{"orNA": orNA}).
		ParseFS(templates, "templates/email.html"),
)

const maxEmailColors = 6

var defaultPalette = HexList{"#333333", "#666666", "#999999"}

var defaultFeatures = []string{"Logo Enhancement", "Color Extraction"}

type emailView struct {
	Summary
	Message         string
	Palette         HexList
	ExtractedColors HexList
	Features        []string
	SocialExports   bool
}

// Subject returns the email subject line for s.
func Subject(s Summary) string {
	return fmt.Sprintf("Your Brand Results: %s", displayName(s))
}

// Render produces the HTML body for a share request.
func Render(req Request) (string, error) {
	s := req.BrandData
	if s.BusinessName == "" {
		s.BusinessName = displayName(s)
	}
	if s.BrandDescription == "" {
		s.BrandDescription = "Professional brand identity designed with AI assistance."
	}
	if s.FontSuggestion == "" {
		s.FontSuggestion = "Arial, sans-serif"
	}

	view := emailView{
		Summary:         s,
		Message:         req.Message,
		Palette:         s.ColorPalette,
		ExtractedColors: s.ExtractedColors[:min(len(s.ExtractedColors), maxEmailColors)],
		Features:        s.EnhancementFeatures,
		SocialExports:   len(s.SocialMediaExports) > 0,
	}
	if len(view.Palette) == 0 {
		view.Palette = defaultPalette
	}
	if len(view.Features) == 0 {
		view.Features = defaultFeatures
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute email template: %w", err)
	}
	return buf.String(), nil
}

func displayName(s Summary) string {
	if s.BusinessName == "" {
		return "Your Brand"
	}
	return s.BusinessName
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
