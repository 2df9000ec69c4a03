package issue

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewTemplate is the text presented in the external editor when creating
// an issue: YAML frontmatter between --- fences, then the first comment.
const NewTemplate = `---
title: ENTER ISSUE TITLE HERE
created_by: YOUR.EMAIL@EXAMPLE.COM

# Trivial | Low | Medium | High | Critical | Blocker
priority: Low

custom:
  # assigned_to: user

---
<no comment provided>
`

// Template holds the fields a user fills in when creating an issue.
type Template struct {
	Title     string            `yaml:"title"`
	Priority  Priority          `yaml:"priority"`
	CreatedBy string            `yaml:"created_by"`
	Custom    map[string]string `yaml:"custom"`
}

// Frontmatter fences with the comment trailing the last delimiter.
var templateRE = regexp.MustCompile(`(?s)^---\n+(.*)\n+---(.*)$`)

// ParseTemplate splits edited template text into its YAML frontmatter and
// trailing comment, then decodes the frontmatter.
func ParseTemplate(text string) (Template, string, error) {
	var tmpl Template
	m := templateRE.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return tmpl, "", fmt.Errorf("issue template has no ---/--- frontmatter fences")
	}
	yamlPart := strings.TrimSpace(m[1])
	comment := strings.TrimSpace(m[2])
	if err := yaml.Unmarshal([]byte(yamlPart), &tmpl); err != nil {
		return tmpl, "", fmt.Errorf("decode issue frontmatter: %w", err)
	}
	if tmpl.Title == "" {
		return tmpl, "", fmt.Errorf("issue template is missing a title")
	}
	return tmpl, comment, nil
}
