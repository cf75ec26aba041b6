package notifications

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"mentorbooking/pkg/model"

	"gopkg.in/yaml.v3"
)

const timeLayout = "02 January 2006, 15:04:05 UTC"

//go:embed templates.yaml
var defaultCatalogue []byte

type templateSource struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type catalogueFile struct {
	Templates map[string]templateSource `yaml:"templates"`
}

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

// Catalogue holds the parsed templates keyed by template id.
type Catalogue struct {
	templates map[string]emailTemplate
}

type Email struct {
	To      string
	Subject string
	Body    string
}

type templateData struct {
	Event             string
	CounterpartyEmail string
	StartTime         string
	EndTime           string
}

// LoadCatalogue parses the YAML file at path, or the built-in catalogue when
// path is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	data := defaultCatalogue
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template catalogue: %w", err)
		}
	}
	return ParseCatalogue(data)
}

func ParseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template catalogue: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalogue is empty")
	}

	c := &Catalogue{templates: make(map[string]emailTemplate, len(file.Templates))}
	for id, src := range file.Templates {
		subject, err := template.New(id + ".subject").Option("missingkey=error").Parse(src.Subject)
		if err != nil {
			return nil, fmt.Errorf("template %s: invalid subject: %w", id, err)
		}
		body, err := template.New(id + ".body").Option("missingkey=error").Parse(src.Body)
		if err != nil {
			return nil, fmt.Errorf("template %s: invalid body: %w", id, err)
		}
		c.templates[id] = emailTemplate{subject: subject, body: body}
	}
	return c, nil
}

func (c *Catalogue) Has(templateID string) bool {
	_, ok := c.templates[templateID]
	return ok
}

func (c *Catalogue) Render(n model.Notification) (Email, error) {
	tmpl, ok := c.templates[n.TemplateID]
	if !ok {
		return Email{}, fmt.Errorf("unknown template %q", n.TemplateID)
	}

	data := templateData{
		Event:             n.EventType.Verb(),
		CounterpartyEmail: n.Payload.CounterpartyEmail,
		StartTime:         n.Payload.StartTime.UTC().Format(timeLayout),
		EndTime:           n.Payload.EndTime.UTC().Format(timeLayout),
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return Email{}, fmt.Errorf("render subject %s: %w", n.TemplateID, err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render body %s: %w", n.TemplateID, err)
	}

	return Email{
		To:      n.RecipientEmail,
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}
