// Package errors defines the error taxonomy §7 names, one type per row of
// the table, plus the HTTP/ProblemDetails mapping that turns any of them
// into a wire response (§4.F). Modelled on the teacher's pkg/errors
// package: one file per error kind, each a plain struct implementing error.
package errors

import (
	"fmt"
	"strings"
)

// InvalidParameterValue is returned when a request parameter or MF-JSON
// body field is present but fails validation (§4.B, §4.C): a malformed
// bbox, an unparsable datetime, a leaf list that isn't strictly ascending,
// limit/offset out of range, or a structurally invalid MF-JSON document.
type InvalidParameterValue struct {
	Param []string
}

func (e InvalidParameterValue) Error() string {
	switch len(e.Param) {
	case 0:
		return "this request has invalid parameters"
	case 1:
		return "incorrect value for parameter: " + e.Param[0]
	default:
		return "incorrect value for parameters: " + strings.Join(e.Param, ", ")
	}
}

// MissingParameterValue is returned when a required parameter or body
// field is absent altogether, distinct from InvalidParameterValue which
// covers a present-but-malformed value. Structural marks a gap the MF-JSON
// Schema Guard (§4.C) found in an otherwise-parsed document — a required
// field missing from a temporalGeometry/temporalProperty entry — which §7
// wire-codes as 501 rather than the 400 a missing path/query parameter or
// an empty body gets.
type MissingParameterValue struct {
	Param      string
	Structural bool
}

func (e MissingParameterValue) Error() string {
	return fmt.Sprintf("required parameter %s is missing", e.Param)
}
