package errors

import "net/http"

// Response is the wire shape §7 assigns every error: a short machine code
// and a human description. Returned as the JSON body on json/jsonld
// requests; its Code/Description are also folded into a ProblemDetails'
// Title/Detail for html requests.
type Response struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (r Response) Error() string {
	return r.Description
}

// Error is a plain string error, used by handler code that has no
// structured taxonomy entry for a one-off failure.
type Error string

func (e Error) Error() string { return string(e) }

// Status maps any error the core produces to the {code, description} pair
// and HTTP status §7 assigns it. Errors outside the named taxonomy (a
// stdlib error bubbling up from somewhere unexpected) map to a generic
// 500, matching the teacher's default-to-internal-error behavior.
func Status(err error) Response {
	switch e := err.(type) {
	case InvalidParameterValue:
		return Response{StatusCode: http.StatusBadRequest, Code: "InvalidParameterValue", Description: e.Error()}
	case MissingParameterValue:
		if e.Structural {
			return Response{StatusCode: http.StatusNotImplemented, Code: "MissingParameterValue", Description: e.Error()}
		}

		return Response{StatusCode: http.StatusBadRequest, Code: "MissingParameterValue", Description: e.Error()}
	case NotFound:
		return Response{StatusCode: http.StatusNotFound, Code: "NotFound", Description: e.Error()}
	case Conflict:
		return Response{StatusCode: http.StatusBadRequest, Code: "Conflict", Description: e.Error()}
	case NotImplemented:
		return Response{StatusCode: http.StatusNotImplemented, Code: "NotImplemented", Description: e.Error()}
	case ConnectingError:
		return Response{StatusCode: http.StatusBadRequest, Code: "ConnectingError", Description: e.Error()}
	case Response:
		return e
	default:
		return Response{StatusCode: http.StatusInternalServerError, Code: "InternalServerError", Description: err.Error()}
	}
}
