package errors

import (
	"encoding/json"
	"fmt"
)

// ProblemDetails implements RFC 7807 for HTML-format error responses (§4.F).
type ProblemDetails struct {
	Type string `json:"type,omitempty"`

	Title string `json:"title,omitempty"`

	Status int `json:"status,omitempty"`

	Detail string `json:"detail,omitempty"`

	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`
}

func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// MarshalJSON folds Extensions into the top-level object alongside the
// named fields, per RFC 7807's extension-member convention.
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	type Alias ProblemDetails

	m := make(map[string]interface{})

	base, err := json.Marshal((*Alias)(p))
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}

	for k, v := range p.Extensions {
		m[k] = v
	}

	return json.Marshal(m)
}

// NewProblemDetails builds a ProblemDetails from options, defaulting Type
// to "about:blank" per RFC 7807.
func NewProblemDetails(options ...ProblemOption) *ProblemDetails {
	p := &ProblemDetails{
		Type:       "about:blank",
		Extensions: make(map[string]interface{}),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

type ProblemOption func(*ProblemDetails)

func WithType(typeURI string) ProblemOption {
	return func(p *ProblemDetails) { p.Type = typeURI }
}

func WithTitle(title string) ProblemOption {
	return func(p *ProblemDetails) { p.Title = title }
}

func WithStatus(status int) ProblemOption {
	return func(p *ProblemDetails) { p.Status = status }
}

func WithDetail(detail string) ProblemOption {
	return func(p *ProblemDetails) { p.Detail = detail }
}

func WithInstance(instance string) ProblemOption {
	return func(p *ProblemDetails) { p.Instance = instance }
}

func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *ProblemDetails) {
		if p.Extensions == nil {
			p.Extensions = make(map[string]interface{})
		}

		p.Extensions[key] = value
	}
}
