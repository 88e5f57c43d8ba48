package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/funnelchart/pkg/errors"
)

// MaxBodySize caps request bodies. Chart definitions are small.
const MaxBodySize = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody] and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	status := errors.HTTPStatus(err)
	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body = ErrorBody{Code: errors.ErrCodeInternal, Message: http.StatusText(status)}
	}
	_ = WriteJSON(w, status, body)
	return status
}

// DecodeJSON decodes the request body into v. Malformed or oversized bodies
// and unknown fields are INVALID_INPUT errors.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodySize+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body holds more than one JSON value")
	}
	return nil
}

// ContentType returns the media type for an output format.
func ContentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	case "json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// WriteBlob writes a rendered artifact with its media type.
func WriteBlob(w http.ResponseWriter, format string, data []byte) error {
	w.Header().Set("Content-Type", ContentType(format))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}
