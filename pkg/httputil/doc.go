// Package httputil provides the JSON request and response helpers shared by
// the funnelchart HTTP handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with the given status. [WriteError] turns any
// error into a JSON body of the form
//
//	{"code": "INVALID_CONFIG", "message": "slope must be in (0, 0.5), got 0.6"}
//
// and picks the status from the error code with [errors.HTTPStatus]. Errors
// without a code are reported as INTERNAL_ERROR and their text is not sent to
// the client.
//
// # Requests
//
// [DecodeJSON] reads at most [MaxBodySize] bytes and rejects unknown fields,
// so that misspelt options fail loudly instead of being ignored.
//
// [errors.HTTPStatus]: github.com/matzehuels/funnelchart/pkg/errors.HTTPStatus
package httputil
