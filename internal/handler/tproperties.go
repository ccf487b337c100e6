package handler

import (
	"time"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/internal/params"
	"github.com/mf-api/server/pkg/mf"
	"github.com/mf-api/server/pkg/mf/errors"
)

type tPropertyResponse struct {
	Name  string `json:"name"`
	Links []Link `json:"links"`
}

func toTPropertyResponse(collectionID, featureID string, tp domain.TemporalProperty) tPropertyResponse {
	base := "/collections/" + collectionID + "/items/" + featureID + "/tProperties/" + tp.Name

	return tPropertyResponse{
		Name: tp.Name,
		Links: []Link{
			{Href: base, Rel: "self", Type: "application/json"},
			{Href: base + "/values", Rel: "values", Type: "application/json"},
		},
	}
}

// ListTemporalProperties handles
// GET /collections/{collectionId}/items/{featureId}/tProperties (§4.E).
func (h *Handlers) ListTemporalProperties(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	if _, err := h.Store.GetFeature(ctx.Context, collectionID, featureID); err != nil {
		return nil, err
	}

	props, err := h.Store.ListTemporalProperties(ctx.Context, collectionID, featureID)
	if err != nil {
		return nil, err
	}

	out := make([]tPropertyResponse, len(props))
	for i, p := range props {
		out[i] = toTPropertyResponse(collectionID, featureID, p)
	}

	return struct {
		Envelope
		TemporalProperties []tPropertyResponse `json:"temporalProperties"`
	}{
		Envelope:           newEnvelope(ctx, len(out), len(out), len(out), 0),
		TemporalProperties: out,
	}, nil
}

type valueSequenceResponse struct {
	Datetimes     []string      `json:"datetimes"`
	Values        []interface{} `json:"values"`
	Interpolation string        `json:"interpolation"`
}

func toValueSequenceResponse(vs domain.ValueSequence) valueSequenceResponse {
	datetimes := make([]string, len(vs.Datetimes))
	for i, dt := range vs.Datetimes {
		datetimes[i] = mfjson.InstantToWire(dt)
	}

	var values []interface{}
	if len(vs.NumericValues) > 0 {
		values = make([]interface{}, len(vs.NumericValues))
		for i, v := range vs.NumericValues {
			values[i] = v
		}
	} else {
		values = make([]interface{}, len(vs.TextValues))
		for i, v := range vs.TextValues {
			values[i] = v
		}
	}

	return valueSequenceResponse{
		Datetimes:     datetimes,
		Values:        values,
		Interpolation: mfjson.InterpolationToWire(vs.Interpolation),
	}
}

// ListTemporalPropertyValues handles
// GET .../tProperties/{tPropertyName}/values (§4.E), the leaf resource
// exposing a tProperty's raw value sequences.
func (h *Handlers) ListTemporalPropertyValues(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")
	name := ctx.PathParam("tPropertyName")

	if collectionID == "" || featureID == "" || name == "" {
		return nil, errors.MissingParameterValue{Param: "tPropertyName"}
	}

	props, err := h.Store.ListTemporalProperties(ctx.Context, collectionID, featureID)
	if err != nil {
		return nil, err
	}

	var tpropertyID string

	for _, p := range props {
		if p.Name == name {
			tpropertyID = p.ID
		}
	}

	if tpropertyID == "" {
		return nil, errors.NotFound{Entity: "tproperties", ID: name}
	}

	interval, err := params.DateTime(ctx.Param("datetime"))
	if err != nil {
		return nil, err
	}

	subTemporalValue, err := params.Bool(ctx.Param("subTemporalValue"), false)
	if err != nil {
		return nil, err
	}

	period := ""
	if interval != nil {
		period = interval.Period()
	}

	sequences, err := h.Store.ListValueSequences(ctx.Context, tpropertyID, period)
	if err != nil {
		return nil, err
	}

	if subTemporalValue && interval != nil {
		for i := range sequences {
			sequences[i] = clipValueSequenceToInterval(sequences[i], interval)
		}
	}

	out := make([]valueSequenceResponse, len(sequences))
	for i, vs := range sequences {
		out[i] = toValueSequenceResponse(vs)
	}

	return struct {
		Envelope
		ValueSequences []valueSequenceResponse `json:"valueSequences"`
	}{
		Envelope:       newEnvelope(ctx, len(out), len(out), len(out), 0),
		ValueSequences: out,
	}, nil
}

// clipValueSequenceToInterval implements the subTemporalValue presentation
// mode (§4.D): a second atperiod-style pass that clips the datetime/value
// pairs of an already datetime_group-matched sequence down to the request
// window, the tProperty-level analogue of clipGeometryToInterval.
func clipValueSequenceToInterval(vs domain.ValueSequence, iv *params.Interval) domain.ValueSequence {
	var datetimes []time.Time

	var numeric []float64

	var text []string

	for i, dt := range vs.Datetimes {
		if !iv.OpenStart && dt.Before(iv.Start) {
			continue
		}

		if !iv.OpenEnd && dt.After(iv.End) {
			continue
		}

		datetimes = append(datetimes, dt)

		if len(vs.NumericValues) > 0 {
			numeric = append(numeric, vs.NumericValues[i])
		}

		if len(vs.TextValues) > 0 {
			text = append(text, vs.TextValues[i])
		}
	}

	vs.Datetimes = datetimes
	vs.NumericValues = numeric
	vs.TextValues = text

	return vs
}

// CreateTemporalProperty handles
// POST /collections/{collectionId}/items/{featureId}/tProperties: adds a
// new named tProperty, with its first value sequence, to an existing
// feature (§6).
func (h *Handlers) CreateTemporalProperty(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	if _, err := h.Store.GetFeature(ctx.Context, collectionID, featureID); err != nil {
		return nil, err
	}

	tp, err := mfjson.ParseTemporalProperty(ctx.Body())
	if err != nil {
		return nil, err
	}

	if err := mfjson.ValidateTemporalProperty(tp, 0); err != nil {
		return nil, err
	}

	if err := h.Store.CreateTemporalProperty(ctx.Context, collectionID, featureID, tp); err != nil {
		return nil, err
	}

	return mf.Created{
		Location: "/collections/" + collectionID + "/items/" + featureID + "/tProperties/" + tp.Name,
		Body:     toTPropertyResponse(collectionID, featureID, domain.TemporalProperty{Name: tp.Name}),
	}, nil
}

// AppendTemporalPropertyValues handles
// POST .../tProperties/{tPropertyName}: appends a new value sequence to an
// already-existing property (§6), the datetime_group-allocating write
// Testable scenario (c) exercises.
func (h *Handlers) AppendTemporalPropertyValues(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")
	name := ctx.PathParam("tPropertyName")

	if collectionID == "" || featureID == "" || name == "" {
		return nil, errors.MissingParameterValue{Param: "tPropertyName"}
	}

	tp, err := mfjson.ParseTemporalProperty(ctx.Body())
	if err != nil {
		return nil, err
	}

	if err := mfjson.ValidateTemporalProperty(tp, 0); err != nil {
		return nil, err
	}

	if err := h.Store.AppendValueSequence(ctx.Context, collectionID, featureID, name, tp); err != nil {
		return nil, err
	}

	return mf.Created{
		Location: "/collections/" + collectionID + "/items/" + featureID + "/tProperties/" + name,
		Body:     toTPropertyResponse(collectionID, featureID, domain.TemporalProperty{Name: name}),
	}, nil
}

// DeleteTemporalProperty handles
// DELETE .../tProperties/{tPropertyName} (§6).
func (h *Handlers) DeleteTemporalProperty(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")
	name := ctx.PathParam("tPropertyName")

	if collectionID == "" || featureID == "" || name == "" {
		return nil, errors.MissingParameterValue{Param: "tPropertyName"}
	}

	return nil, h.Store.DeleteTemporalProperty(ctx.Context, collectionID, featureID, name)
}
