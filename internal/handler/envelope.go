// Package handler implements the Resource Controllers (§4.E): one file per
// resource kind, each following the 6-step contract — format validity, id
// existence checks, param/body validation, DAL invocation, MF-JSON
// envelope assembly, dialect conversion on read.
package handler

import (
	"fmt"
	"time"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/pkg/mf"
)

const (
	defaultCRS = "urn:ogc:def:crs:OGC:1.3:CRS84"
	defaultTRS = "urn:ogc:data:time:iso8601"
)

// Link is an OGC API link object, included on every collection/resource
// envelope (§6).
type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
	Type string `json:"type,omitempty"`
}

// Envelope is the common wrapper every listing response carries (§6):
// timeStamp, paging counts, and navigation links. Listing responses embed
// it next to their resource-specific payload key ("collections",
// "features", "temporalGeometries", etc).
type Envelope struct {
	Links          []Link `json:"links"`
	TimeStamp      string `json:"timeStamp"`
	NumberMatched  int    `json:"numberMatched"`
	NumberReturned int    `json:"numberReturned"`
}

func newEnvelope(ctx *mf.Context, numberMatched, numberReturned, limit, offset int) Envelope {
	links := []Link{{Href: ctx.Path(), Rel: "self", Type: "application/json"}}

	if offset+numberReturned < numberMatched {
		links = append(links, Link{
			Href: fmt.Sprintf("%s?limit=%d&offset=%d", ctx.Path(), limit, offset+limit),
			Rel:  "next", Type: "application/json",
		})
	}

	return Envelope{
		Links:          links,
		TimeStamp:      time.Now().UTC().Format(time.RFC3339Nano),
		NumberMatched:  numberMatched,
		NumberReturned: numberReturned,
	}
}

func bboxToWire(b *domain.BBox) []float64 {
	if b == nil {
		return nil
	}

	if b.ZMin != nil {
		return []float64{b.XMin, b.YMin, *b.ZMin, b.XMax, b.YMax, *b.ZMax}
	}

	return []float64{b.XMin, b.YMin, b.XMax, b.YMax}
}

func periodToTimeEnvelope(p *domain.Period) *mfjson.TimeEnvelope {
	if p == nil {
		return nil
	}

	return &mfjson.TimeEnvelope{
		Interval: []string{mfjson.InstantToWire(p.Start), mfjson.InstantToWire(p.End)},
	}
}
