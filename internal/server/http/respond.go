package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/and161185/dev-diary/internal/errs"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Detail string `json:"detail"`
}

type errorRule struct {
	target error
	status int
	detail string
}

// Order matters: specific sentinels precede the generic ones they wrap.
var errorRules = []errorRule{
	{errs.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{errs.ErrTagExists, http.StatusBadRequest, "Tag already exists"},
	{errs.ErrAlreadyExists, http.StatusBadRequest, "Already exists"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect email or password"},
	{errs.ErrInvalidToken, http.StatusUnauthorized, "Could not validate credentials"},
	{errs.ErrUserNotFound, http.StatusUnauthorized, "Could not validate credentials"},
	{errs.ErrEntryNotFound, http.StatusNotFound, "Entry not found"},
	{errs.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{errs.ErrTagNotFound, http.StatusNotFound, "Tag not found"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are logged
// and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			writeDetail(w, rule.status, rule.detail)
			return
		}
	}
	if errors.Is(err, errs.ErrValidation) {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Validationf("empty request body")
		}
		return errs.Validationf("invalid JSON body: %v", err)
	}
	return nil
}
