// Package content defines the resume content model and loads it from YAML.
//
// Free-text fields (the profile summary, experience and project
// descriptions) are written in Markdown. Loading renders them to sanitized
// HTML once, so templates never run a converter per request.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/mvasylkiv/vitae/pkg/sanitizer"
)

// Resume is the full content of the site.
type Resume struct {
	Profile    Profile      `yaml:"profile" validate:"required"`
	Experience []Experience `yaml:"experience" validate:"dive"`
	Education  []Education  `yaml:"education" validate:"dive"`
	Skills     []SkillGroup `yaml:"skills" validate:"dive"`
	Projects   []Project    `yaml:"projects" validate:"dive"`
}

// Profile holds the header and contact block.
type Profile struct {
	Name     string `yaml:"name" validate:"required"`
	Title    string `yaml:"title" validate:"required"`
	Email    string `yaml:"email" validate:"omitempty,email"`
	Location string `yaml:"location"`
	Website  string `yaml:"website" validate:"omitempty,url"`
	Summary  string `yaml:"summary"`
	Links    []Link `yaml:"links" validate:"dive"`

	SummaryHTML template.HTML `yaml:"-"`
}

// Link is a labeled external URL (GitHub, LinkedIn, and similar).
type Link struct {
	Label string `yaml:"label" validate:"required"`
	URL   string `yaml:"url" validate:"required,url"`
}

// Experience is one work history entry. End is empty for the current role.
type Experience struct {
	Company     string   `yaml:"company" validate:"required"`
	Role        string   `yaml:"role" validate:"required"`
	Start       string   `yaml:"start" validate:"required"`
	End         string   `yaml:"end"`
	Description string   `yaml:"description"`
	Highlights  []string `yaml:"highlights"`

	DescriptionHTML template.HTML `yaml:"-"`
}

// Education is one education entry.
type Education struct {
	School string `yaml:"school" validate:"required"`
	Degree string `yaml:"degree" validate:"required"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
}

// SkillGroup is a named group of skills with a 0-100 proficiency level,
// rendered as a bar.
type SkillGroup struct {
	Category string   `yaml:"category" validate:"required"`
	Level    int      `yaml:"level" validate:"min=0,max=100"`
	Items    []string `yaml:"items" validate:"min=1"`
}

// Project is one portfolio entry.
type Project struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url" validate:"omitempty,url"`
	Tags        []string `yaml:"tags"`

	DescriptionHTML template.HTML `yaml:"-"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Load reads, validates, and renders the resume content file.
func Load(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates resume YAML and renders its markdown fields.
func Parse(data []byte) (*Resume, error) {
	var r Resume
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("content: parsing resume: %w", err)
	}

	if err := validator.New().Struct(&r); err != nil {
		return nil, fmt.Errorf("content: invalid resume: %w", err)
	}

	if err := r.render(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Resume) render() error {
	var err error
	if r.Profile.SummaryHTML, err = renderMarkdown(r.Profile.Summary); err != nil {
		return err
	}
	for i := range r.Experience {
		if r.Experience[i].DescriptionHTML, err = renderMarkdown(r.Experience[i].Description); err != nil {
			return err
		}
	}
	for i := range r.Projects {
		if r.Projects[i].DescriptionHTML, err = renderMarkdown(r.Projects[i].Description); err != nil {
			return err
		}
	}
	return nil
}

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("content: rendering markdown: %w", err)
	}
	return template.HTML(sanitizer.Markdown(buf.String())), nil //nolint:gosec
}

// PlainSummary returns the profile summary as plain text, for meta
// descriptions and PDF output.
func (r *Resume) PlainSummary() string {
	return sanitizer.Plain(string(r.Profile.SummaryHTML))
}
