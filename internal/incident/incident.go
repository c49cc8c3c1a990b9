package incident

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"
)

// Resolver extracts maintenance incident numbers from source projects
// and generates the incident URLs shown next to requests.
type Resolver struct {
	urlTemplate    *template.Template
	incidentRegexp *regexp.Regexp
}

// NewResolver creates a new Resolver instance with the given URL
// template. The template receives the incident number as {{.Incident}}.
func NewResolver(urlTemplate string) (*Resolver, error) {
	var tmpl *template.Template
	if urlTemplate != "" {
		var err error
		tmpl, err = template.New("incidentURL").Parse(urlTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse incident URL template: %w", err)
		}
	}

	return &Resolver{
		urlTemplate:    tmpl,
		incidentRegexp: regexp.MustCompile(`:Maintenance:([0-9]+)`),
	}, nil
}

// ExtractNumber extracts the incident number from a source project
// like "SUSE:Maintenance:130".
func (r *Resolver) ExtractNumber(srcProject string) string {
	matches := r.incidentRegexp.FindStringSubmatch(srcProject)
	if len(matches) < 2 {
		return ""
	}

	return matches[1]
}

// MakeURL generates an incident URL from the template and a source
// project.
func (r *Resolver) MakeURL(srcProject string) (string, error) {
	number := r.ExtractNumber(srcProject)
	if number == "" || r.urlTemplate == nil {
		return "", nil
	}

	var buf bytes.Buffer
	data := struct {
		Incident string
	}{
		Incident: number,
	}

	if err := r.urlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute incident URL template: %w", err)
	}

	return buf.String(), nil
}
