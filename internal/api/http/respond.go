package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"

	"scholarship-workers/internal/common/errors"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

func writeJSON(w nethttp.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status of its code. Errors that are not
// StandardErrors are reported as internal without their text.
func writeError(w nethttp.ResponseWriter, err error) {
	stdErr, ok := errors.As(err)
	if !ok {
		writeJSON(w, nethttp.StatusInternalServerError, errorBody{Error: errorDetail{
			Code:    string(errors.ErrCodeInternal),
			Message: "Unexpected error",
		}})
		return
	}
	detail := errorDetail{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
	}
	status := errors.HTTPStatus(stdErr.Code)
	if status < nethttp.StatusInternalServerError {
		detail.Details = stdErr.Details
		detail.Fields = stdErr.Metadata["fields"]
	}
	writeJSON(w, status, errorBody{Error: detail})
}

// decodeJSON reads a single JSON object from the request body. An empty body
// leaves v untouched.
func decodeJSON(r *nethttp.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.NewValidationError("malformed JSON body: " + err.Error())
	}
	return nil
}
