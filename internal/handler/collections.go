package handler

import (
	"github.com/mf-api/server/internal/domain"
	"github.com/mf-api/server/internal/mfjson"
	"github.com/mf-api/server/internal/store"
	"github.com/mf-api/server/pkg/mf"
	"github.com/mf-api/server/pkg/mf/errors"
)

// Handlers wires the Resource Controllers (§4.E) to the DAL; one instance
// is shared across the process, exactly like the teacher's store.Store.
type Handlers struct {
	Store *store.Store
}

func New(s *store.Store) *Handlers {
	return &Handlers{Store: s}
}

type collectionResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title,omitempty"`
	Description     string               `json:"description,omitempty"`
	ItemType        string               `json:"itemType"`
	UpdateFrequency int                  `json:"updateFrequency,omitempty"`
	Property        map[string]any       `json:"property,omitempty"`
	BBox            []float64            `json:"bbox,omitempty"`
	Time            *mfjson.TimeEnvelope `json:"time,omitempty"`
	CRS             string               `json:"crs,omitempty"`
	TRS             string               `json:"trs,omitempty"`
	Links           []Link               `json:"links"`
}

// toCollectionResponse renders a collection envelope, folding in the
// derived bbox/time extent of every feature it owns (§3, §4.E(5)): the
// extent is never stored on the collection row itself, it's recomputed
// from mfeature.extent the same way a feature's own extent is recomputed
// from its tGeometries.
func (h *Handlers) toCollectionResponse(ctx *mf.Context, c domain.Collection) collectionResponse {
	resp := collectionResponse{
		ID: c.ID, Title: c.Title, Description: c.Description,
		ItemType: c.ItemType, UpdateFrequency: c.UpdateFrequency,
		Property: c.Property,
		CRS:      defaultCRS, TRS: defaultTRS,
		Links: []Link{
			{Href: "/collections/" + c.ID, Rel: "self", Type: "application/json"},
			{Href: "/collections/" + c.ID + "/items", Rel: "items", Type: "application/json"},
		},
	}

	bbox, lifespan, err := h.Store.CollectionExtent(ctx.Context, c.ID)
	if err != nil || bbox == nil {
		return resp
	}

	resp.BBox = bboxToWire(bbox)
	resp.Time = periodToTimeEnvelope(lifespan)

	return resp
}

// ListCollections handles GET /collections (§4.E).
func (h *Handlers) ListCollections(ctx *mf.Context) (any, error) {
	collections, err := h.Store.ListCollections(ctx.Context)
	if err != nil {
		return nil, err
	}

	out := make([]collectionResponse, len(collections))
	for i, c := range collections {
		out[i] = h.toCollectionResponse(ctx, c)
	}

	return struct {
		Envelope
		Collections []collectionResponse `json:"collections"`
	}{
		Envelope:    newEnvelope(ctx, len(out), len(out), len(out), 0),
		Collections: out,
	}, nil
}

// GetCollection handles GET /collections/{collectionId}.
func (h *Handlers) GetCollection(ctx *mf.Context) (any, error) {
	id := ctx.PathParam("collectionId")
	if id == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId"}
	}

	c, err := h.Store.GetCollection(ctx.Context, id)
	if err != nil {
		return nil, err
	}

	return h.toCollectionResponse(ctx, c), nil
}

type createCollectionRequest struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	ItemType        string         `json:"itemType"`
	UpdateFrequency int            `json:"updateFrequency"`
	Property        map[string]any `json:"property"`
}

// CreateCollection handles POST /collections. Identifiers are opaque and
// server-assigned (§3): a request with no "id" is accepted, not rejected,
// and the minted id comes back in the Location header (§6).
func (h *Handlers) CreateCollection(ctx *mf.Context) (any, error) {
	var req createCollectionRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, errors.InvalidParameterValue{Param: []string{"body"}}
	}

	c := domain.Collection{
		ID: req.ID, Title: req.Title, Description: req.Description,
		ItemType: req.ItemType, UpdateFrequency: req.UpdateFrequency,
		Property: req.Property,
	}

	id, err := h.Store.CreateCollection(ctx.Context, c)
	if err != nil {
		return nil, err
	}

	c.ID = id

	return mf.Created{Location: "/collections/" + id, Body: h.toCollectionResponse(ctx, c)}, nil
}

// UpdateCollection handles PUT /collections/{collectionId}.
func (h *Handlers) UpdateCollection(ctx *mf.Context) (any, error) {
	id := ctx.PathParam("collectionId")
	if id == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId"}
	}

	var req createCollectionRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, errors.InvalidParameterValue{Param: []string{"body"}}
	}

	c := domain.Collection{
		ID: id, Title: req.Title, Description: req.Description,
		ItemType: req.ItemType, UpdateFrequency: req.UpdateFrequency,
		Property: req.Property,
	}

	if err := h.Store.UpdateCollection(ctx.Context, c); err != nil {
		return nil, err
	}

	return h.toCollectionResponse(ctx, c), nil
}

// DeleteCollection handles DELETE /collections/{collectionId}.
func (h *Handlers) DeleteCollection(ctx *mf.Context) (any, error) {
	id := ctx.PathParam("collectionId")
	if id == "" {
		return nil, errors.MissingParameterValue{Param: "collectionId"}
	}

	return nil, h.Store.DeleteCollection(ctx.Context, id)
}
