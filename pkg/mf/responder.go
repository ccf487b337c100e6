package mf

import (
	"encoding/json"
	"net/http"

	"github.com/mf-api/server/pkg/mf/errors"
)

// Created wraps a resource-creation response so the responder can emit the
// 201 status and Location header the OGC API creation endpoints require
// (§6), instead of the 200 every other success response gets.
type Created struct {
	Location string
	Body     any
}

// WriteResponse implements the Error/Format Responder (§4.F): on success it
// marshals resp per the request's negotiated format; on error it maps the
// error to its §7 status/code/description and, for html, wraps it in a
// ProblemDetails instead.
func WriteResponse(w http.ResponseWriter, req Request, resp any, err error) {
	if err != nil {
		writeError(w, req, err)
		return
	}

	writeSuccess(w, req, resp)
}

func writeSuccess(w http.ResponseWriter, req Request, resp any) {
	contentType := "application/json"
	if req.Format() == "jsonld" {
		contentType = "application/ld+json"
	}

	if created, ok := resp.(Created); ok {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Location", created.Location)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created.Body)

		return
	}

	w.Header().Set("Content-Type", contentType)

	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, req Request, err error) {
	status := errors.Status(err)

	if req.Format() == "html" {
		pd := errors.NewProblemDetails(
			errors.WithStatus(status.StatusCode),
			errors.WithTitle(status.Code),
			errors.WithDetail(status.Description),
			errors.WithInstance(req.Path()),
		)

		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(status.StatusCode)
		_ = json.NewEncoder(w).Encode(pd)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status.StatusCode)
	_ = json.NewEncoder(w).Encode(status)
}
