package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// responder writes JSON bodies and maps errors to status codes. Internal error
// details are only exposed when debug is set.
type responder struct {
	log   *zap.Logger
	debug bool
}

func newResponder(log *zap.Logger, debug bool) *responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &responder{log: log, debug: debug}
}

// writeJSON writes a JSON response
func (rs *responder) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.log.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error JSON response
func (rs *responder) writeError(w http.ResponseWriter, status int, message string) {
	rs.writeJSON(w, status, map[string]string{"error": message})
}

// fail maps err to a status. Typed errors carry their own message; anything
// else becomes a 500 with fallback as the message.
func (rs *responder) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	if status != http.StatusInternalServerError {
		rs.writeError(w, status, err.Error())
		return
	}

	rs.log.Error(fallback,
		zap.String(logger.FieldMethod, r.Method),
		zap.String(logger.FieldPath, r.URL.Path),
		zap.Error(err),
	)
	body := map[string]string{"error": fallback}
	if rs.debug {
		body["details"] = err.Error()
	}
	rs.writeJSON(w, status, body)
}

// decode reads a JSON body into dst and runs its validation. It writes the 400
// response itself and reports whether the handler should continue.
func (rs *responder) decode(w http.ResponseWriter, r *http.Request, dst interface{ Validate() error }) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		rs.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := dst.Validate(); err != nil {
		rs.writeError(w, http.StatusBadRequest, types.ValidationMessage(err))
		return false
	}
	return true
}
