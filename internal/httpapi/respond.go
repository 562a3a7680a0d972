package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/observability"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeError renders err with the HTTP status of its code. Internal failures
// are logged and their detail is not exposed.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	message := errors.GetMessage(err)
	if status >= http.StatusInternalServerError {
		observability.For(r.Context(), h.logger).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if code == errors.CodeInternal {
			message = "internal error"
		}
	}
	writeJSON(w, status, errorResponse{
		Status:  status,
		Error:   string(code),
		Message: message,
		Path:    r.URL.Path,
	})
}

// decode reads a JSON body into dst.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidArgumentf("malformed request body: %v", err)
	}
	return nil
}

// pathID parses the path wildcard name as a positive id. Unparseable ids are
// reported as NOT_FOUND because no resource can carry them.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotFoundf("no resource with id %q", raw)
	}
	return id, nil
}
