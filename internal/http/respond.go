package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finboard/internal/core"
	"finboard/internal/ledger"
)

// mutationResult is the envelope every write endpoint returns. Data carries
// the created resource when there is one.
type mutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, mutationResult{Success: true, Data: data})
}

// writeMutationError maps domain errors onto HTTP statuses and always keeps
// the envelope shape.
func writeMutationError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound), errors.Is(err, ledger.ErrCategoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrCategoryExists):
		status = http.StatusConflict
	case isValidationError(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, mutationResult{Success: false, Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidType,
		core.ErrInvalidAmount,
		core.ErrEmptyCategory,
		core.ErrMissingAccount,
		core.ErrEmptyTicker,
		core.ErrInvalidAction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeBody reads a JSON request body with a size cap; oversized or
// malformed bodies are client errors.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, mutationResult{Success: false, Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
