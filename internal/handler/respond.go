package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/templui/okrledger/internal/logger"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
	"github.com/templui/okrledger/internal/validation"
)

const maxBodyBytes = 1 << 20

// writeError maps service errors onto status codes. Anything unrecognised
// is logged and reported as a 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.UnprocessableEntity(w, verr.Error(), verr)
	case service.IsNotFound(err):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrObjectiveLocked):
		response.Conflict(w, err.Error())
	case errors.Is(err, service.ErrStorageDisabled):
		response.ServiceUnavailable(w, err.Error())
	default:
		logger.FromContext(r.Context()).Error(msg, append([]any{"error", err, "path", r.URL.Path}, attrs...)...)
		response.InternalServerError(w, msg)
	}
}

// decodePayload reads a JSON object body. Numbers stay json.Number so
// validation can coerce them without float rounding surprises.
func decodePayload(w http.ResponseWriter, r *http.Request) (validation.Payload, bool) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload validation.Payload
	err := dec.Decode(&payload)
	if err != nil || payload == nil {
		response.BadRequest(w, "request body must be a JSON object")
		return nil, false
	}
	return payload, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}
