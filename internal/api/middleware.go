package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	app_errors "zai-proxy/internal/errors"
)

// recoverer turns a panic into the JSON 500 body and logs the stack.
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
func recoverer(showDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				slog.Error("Recovered from panic", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				respondWithError(w, fmt.Errorf("%w: %v", app_errors.ErrInternal, rec), showDetail)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// HandleHealth godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
