package handler

import (
	"time"

	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/internal/params"
	"github.com/mf-api/server/pkg/mf"
	"github.com/mf-api/server/pkg/mf/errors"
)

type tGeometryResponse struct {
	Type          string      `json:"type"`
	ID            string      `json:"id"`
	Interpolation string      `json:"interpolation"`
	Datetimes     []string    `json:"datetimes"`
	Coordinates   [][]float64 `json:"coordinates"`
	BBox          []float64   `json:"bbox,omitempty"`
}

func toTGeometryResponse(tg domain.TemporalGeometry) tGeometryResponse {
	datetimes := make([]string, len(tg.Datetimes))
	for i, dt := range tg.Datetimes {
		datetimes[i] = mfjson.InstantToWire(dt)
	}

	return tGeometryResponse{
		Type:          mfjson.GeometryTypeToWire("MovingGeomPoint"),
		ID:            tg.ID,
		Interpolation: mfjson.InterpolationToWire(tg.Interpolation),
		Datetimes:     datetimes,
		Coordinates:   tg.Coordinates,
		BBox:          bboxToWire(tg.BBox),
	}
}

// ListTemporalGeometries handles
// GET /collections/{collectionId}/items/{featureId}/tGeometries (§4.E).
func (h *Handlers) ListTemporalGeometries(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	if _, err := h.Store.GetFeature(ctx.Context, collectionID, featureID); err != nil {
		return nil, err
	}

	interval, err := params.DateTime(ctx.Param("datetime"))
	if err != nil {
		return nil, err
	}

	leaf, err := params.Leaf(ctx.Param("leaf"))
	if err != nil {
		return nil, err
	}

	subTrajectory, err := params.Bool(ctx.Param("subTrajectory"), false)
	if err != nil {
		return nil, err
	}

	if err := params.ValidateExclusive(len(leaf) > 0, subTrajectory, "subTrajectory"); err != nil {
		return nil, err
	}

	period := ""
	if interval != nil {
		period = interval.Period()
	}

	wireLeaf := make([]string, len(leaf))
	for i, l := range leaf {
		wireLeaf[i] = mfjson.InstantToWire(l)
	}

	geoms, err := h.Store.ListTemporalGeometries(ctx.Context, collectionID, featureID, period, wireLeaf)
	if err != nil {
		return nil, err
	}

	if subTrajectory && interval != nil {
		for i := range geoms {
			geoms[i] = clipGeometryToInterval(geoms[i], interval)
		}
	}

	out := make([]tGeometryResponse, len(geoms))
	for i, g := range geoms {
		out[i] = toTGeometryResponse(g)
	}

	return struct {
		Envelope
		TemporalGeometries []tGeometryResponse `json:"temporalGeometries"`
	}{
		Envelope:           newEnvelope(ctx, len(out), len(out), len(out), 0),
		TemporalGeometries: out,
	}, nil
}

// clipGeometryToInterval implements the subTrajectory presentation mode
// (§4.D): unlike the plain period filter, which only decides whether a
// tGeometry exists within the window, subTrajectory clips the returned
// samples to it, the tGeometry-level analogue of atperiod(...).
func clipGeometryToInterval(tg domain.TemporalGeometry, iv *params.Interval) domain.TemporalGeometry {
	var datetimes []time.Time

	var coords [][]float64

	for i, dt := range tg.Datetimes {
		if !iv.OpenStart && dt.Before(iv.Start) {
			continue
		}

		if !iv.OpenEnd && dt.After(iv.End) {
			continue
		}

		datetimes = append(datetimes, dt)
		coords = append(coords, tg.Coordinates[i])
	}

	tg.Datetimes = datetimes
	tg.Coordinates = coords

	return tg
}

// CreateTemporalGeometry handles
// POST /collections/{collectionId}/items/{featureId}/tGeometries: appends a
// new tGeometry to an existing feature, outside the nested-ingestion path
// CreateFeature also supports (§6).
func (h *Handlers) CreateTemporalGeometry(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")

	if collectionID == "" || featureID == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId/featureId"}
	}

	if _, err := h.Store.GetFeature(ctx.Context, collectionID, featureID); err != nil {
		return nil, err
	}

	tg, err := mfjson.ParseTemporalGeometry(ctx.Body())
	if err != nil {
		return nil, err
	}

	if err := mfjson.ValidateTemporalGeometry(tg, 0); err != nil {
		return nil, err
	}

	id, err := h.Store.CreateTemporalGeometry(ctx.Context, collectionID, featureID, tg)
	if err != nil {
		return nil, err
	}

	return mf.Created{
		Location: "/collections/" + collectionID + "/items/" + featureID + "/tGeometries/" + id,
		Body: struct {
			ID string `json:"id"`
		}{ID: id},
	}, nil
}

// DeleteTemporalGeometry handles
// DELETE /collections/{collectionId}/items/{featureId}/tGeometries/{tGeometryId}.
func (h *Handlers) DeleteTemporalGeometry(ctx *mf.Context) (any, error) {
	collectionID := ctx.PathParam("collectionId")
	featureID := ctx.PathParam("featureId")
	tGeometryID := ctx.PathParam("tGeometryId")

	if collectionID == "" || featureID == "" || tGeometryID == "" {
		return nil, errors.MissingParameterValue{Param: "tGeometryId"}
	}

	return nil, h.Store.DeleteTemporalGeometry(ctx.Context, collectionID, featureID, tGeometryID)
}
