package handler

import (
	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/internal/params"
	"github.com/mf-api/server/internal/store"
	"github.com/mf-api/server/pkg/mf"
	"github.com/mf-api/server/pkg/mf/errors"
)

// clipFeatureToInterval implements the features-level subTrajectory
// presentation mode (§4.D): a second atperiod-style pass over the feature's
// own extent, narrowing the reported lifespan to the requested window
// rather than the full extent ListFeatures's bbox/period predicate merely
// matched against.
func clipFeatureToInterval(f domain.MovingFeature, iv *params.Interval) domain.MovingFeature {
	if f.Lifespan == nil {
		return f
	}

	start, lowerInc := f.Lifespan.Start, f.Lifespan.LowerInc
	if !iv.OpenStart && iv.Start.After(start) {
		start, lowerInc = iv.Start, true
	}

	end, upperInc := f.Lifespan.End, f.Lifespan.UpperInc
	if !iv.OpenEnd && iv.End.Before(end) {
		end, upperInc = iv.End, true
	}

	f.Lifespan = &domain.Period{Start: start, End: end, LowerInc: lowerInc, UpperInc: upperInc}

	return f
}

type featureResponse struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Properties map[string]any       `json:"properties,omitempty"`
	BBox       []float64            `json:"bbox,omitempty"`
	Time       *mfjson.TimeEnvelope `json:"time,omitempty"`
	Links      []Link               `json:"links"`
}

func toFeatureResponse(mf domain.MovingFeature) featureResponse {
	return featureResponse{
		Type: "Feature", ID: mf.ID, Properties: mf.Property,
		BBox: bboxToWire(mf.BBox), Time: periodToTimeEnvelope(mf.Lifespan),
		Links: []Link{{Href: "/collections/" + mf.CollectionID + "/items/" + mf.ID, Rel: "self", Type: "application/json"}},
	}
}

// ListFeatures handles GET /collections/{collectionId}/items (§4.E).
func (h *Handlers) ListFeatures(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	if collectionID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId"}
	}

	if _, err := h.Store.GetCollection(ctx.Context, collectionID); err != nil {
		return nil, err
	}

	bbox, err := params.BBox(ctx.Param("bbox"))
	if err != nil {
		return nil, err
	}

	interval, err := params.DateTime(ctx.Param("datetime"))
	if err != nil {
		return nil, err
	}

	limit, offset, err := params.Paging(ctx.Param("limit"), ctx.Param("offset"))
	if err != nil {
		return nil, err
	}

	subTrajectory, err := params.Bool(ctx.Param("subTrajectory"), false)
	if err != nil {
		return nil, err
	}

	filter := store.FeatureFilter{BBox: bbox, Limit: limit, Offset: offset}
	if interval != nil {
		filter.Period = interval.Period()
	}

	features, total, err := h.Store.ListFeatures(ctx.Context, collectionID, filter)
	if err != nil {
		return nil, err
	}

	if subTrajectory && interval != nil {
		for i := range features {
			features[i] = clipFeatureToInterval(features[i], interval)
		}
	}

	out := make([]featureResponse, len(features))
	for i, f := range features {
		out[i] = toFeatureResponse(f)
	}

	return struct {
		Envelope
		Type     string            `json:"type"`
		Features []featureResponse `json:"features"`
	}{
		Envelope: newEnvelope(ctx, total, len(out), limit, offset),
		Type:     "FeatureCollection",
		Features: out,
	}, nil
}

// GetFeature handles GET /collections/{collectionId}/items/{featureId}.
func (h *Handlers) GetFeature(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	f, err := h.Store.GetFeature(ctx.Context, collectionID, featureID)
	if err != nil {
		return nil, err
	}

	return toFeatureResponse(f), nil
}

// CreateFeature handles POST /collections/{collectionId}/items: the
// top-level moving feature ingestion entry point, optionally nesting
// temporalGeometries/temporalProperties in the same request body (§3, §5).
func (h *Handlers) CreateFeature(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	if collectionID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId"}
	}

	if _, err := h.Store.GetCollection(ctx.Context, collectionID); err != nil {
		return nil, err
	}

	feature, err := mfjson.Parse(ctx.Body())
	if err != nil {
		return nil, err
	}

	if err := mfjson.ValidateFeature(feature); err != nil {
		return nil, err
	}

	id, err := h.Store.CreateFeature(ctx.Context, collectionID, feature)
	if err != nil {
		return nil, err
	}

	f, err := h.Store.GetFeature(ctx.Context, collectionID, id)
	if err != nil {
		return nil, err
	}

	return mf.Created{
		Location: "/collections/" + collectionID + "/items/" + id,
		Body:     toFeatureResponse(f),
	}, nil
}

// DeleteFeature handles DELETE /collections/{collectionId}/items/{featureId}.
func (h *Handlers) DeleteFeature(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	return nil, h.Store.DeleteFeature(ctx.Context, collectionID, featureID)
}
