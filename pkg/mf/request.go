package mf

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Request is the normalized request record §4.A produces: uniform access
// to params, body, headers, and the negotiated format/locale, regardless of
// what carried the request in. Modelled on the teacher's http.Request
// (NewRequest(*http.Request), Param, PathParam, Bind).
type Request interface {
	Context() context.Context
	Param(key string) string
	Params(key string) []string
	PathParam(key string) string
	Bind(i any) error
	Body() []byte
	Header(key string) string
	Method() string
	Path() string
	// Format is the negotiated short token: "json", "html", "jsonld", or "".
	Format() string
	// Locale is the resolved locale (one of the server's supported locales)
	// and RawLocale is the client's original, unmatched string.
	Locale() string
	RawLocale() string
}

type httpRequest struct {
	req        *http.Request
	pathParams map[string]string
	body       []byte

	format    string
	locale    string
	rawLocale string
}

// formatPriority maps a MIME type fragment to its negotiated token, in
// the priority order §4.A mandates: html, then jsonld, then json.
var formatPriority = []struct {
	mime  string
	token string
}{
	{"text/html", "html"},
	{"application/ld+json", "jsonld"},
	{"application/json", "json"},
}

// NewRequest builds the normalized request record for r, running format and
// locale negotiation (§4.A) once up front.
func NewRequest(r *http.Request, pathParams map[string]string, supportedLocales []string) Request {
	body, _ := io.ReadAll(r.Body)

	hr := &httpRequest{
		req:        r,
		pathParams: pathParams,
		body:       body,
	}

	hr.format = negotiateFormat(r)
	hr.locale, hr.rawLocale = negotiateLocale(r, supportedLocales)

	return hr
}

// negotiateFormat implements §4.A format negotiation:
//  1. ?f=<token> wins outright, even if unrecognized downstream decides validity.
//  2. Otherwise walk Accept, ignoring ;q=..., first known MIME type in
//     declared priority order {html, jsonld, json} wins.
//  3. Otherwise empty.
func negotiateFormat(r *http.Request) string {
	if f := r.URL.Query().Get("f"); f != "" {
		return f
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		return ""
	}

	fragments := strings.Split(accept, ",")
	seen := make(map[string]bool, len(fragments))

	for _, frag := range fragments {
		mime := strings.TrimSpace(strings.SplitN(frag, ";", 2)[0])
		seen[mime] = true
	}

	for _, candidate := range formatPriority {
		if seen[candidate.mime] {
			return candidate.token
		}
	}

	return ""
}

// negotiateLocale implements §4.A locale negotiation: ?lang= first, then
// Accept-Language, matched against the server's supported locale list;
// falls back to the first supported locale.
func negotiateLocale(r *http.Request, supported []string) (locale, raw string) {
	if len(supported) == 0 {
		supported = []string{"en"}
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}

	matcher := language.NewMatcher(tags)

	if lang := r.URL.Query().Get("lang"); lang != "" {
		tag, _, _ := language.ParseAcceptLanguage(lang)
		if len(tag) > 0 {
			_, idx, _ := matcher.Match(tag...)
			return supported[idx], lang
		}
	}

	acceptLang := r.Header.Get("Accept-Language")
	if acceptLang != "" {
		tag, _, err := language.ParseAcceptLanguage(acceptLang)
		if err == nil && len(tag) > 0 {
			_, idx, _ := matcher.Match(tag...)
			return supported[idx], acceptLang
		}
	}

	return supported[0], ""
}

func (r *httpRequest) Context() context.Context { return r.req.Context() }

func (r *httpRequest) Param(key string) string { return r.req.URL.Query().Get(key) }

func (r *httpRequest) Params(key string) []string { return r.req.URL.Query()[key] }

func (r *httpRequest) PathParam(key string) string { return r.pathParams[key] }

func (r *httpRequest) Body() []byte { return r.body }

func (r *httpRequest) Header(key string) string { return r.req.Header.Get(key) }

func (r *httpRequest) Method() string { return r.req.Method }

func (r *httpRequest) Path() string { return r.req.URL.Path }

func (r *httpRequest) Format() string { return r.format }

func (r *httpRequest) Locale() string { return r.locale }

func (r *httpRequest) RawLocale() string { return r.rawLocale }

// Bind decodes a JSON body into i. Mirrors the teacher's Request.Bind,
// trimmed to the one content type this API accepts on write paths.
func (r *httpRequest) Bind(i any) error {
	if len(r.body) == 0 {
		return nil
	}

	ct := r.req.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "json") {
		return nil
	}

	return json.Unmarshal(r.body, i)
}
