package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"zai-proxy/internal/interfaces"
)

// UsageHandler serves the usage ledger.
type UsageHandler struct {
	service    interfaces.UsageService
	showDetail bool
}

func NewUsageHandler(svc interfaces.UsageService, showDetail bool) *UsageHandler {
	return &UsageHandler{service: svc, showDetail: showDetail}
}

// HandleListUsage godoc
// @Summary      Usage summary
// @Description  Aggregates recorded exchanges per model, split by how each exchange ended.
// @Tags         Usage
// @Produce      json
// @Success      200  {object}  model.UsageList
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/usage [get]
func (h *UsageHandler) HandleListUsage(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Summaries(r.Context())
	if err != nil {
		respondWithError(w, err, h.showDetail)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// HandleGetRecord godoc
// @Summary      Usage record
// @Description  Returns the ledger entry of one exchange by its upstream request id.
// @Tags         Usage
// @Produce      json
// @Param        id   path      string  true  "Upstream request id"
// @Success      200  {object}  model.UsageRecord
// @Failure      404  {object}  DetailResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/usage/{id} [get]
func (h *UsageHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err, h.showDetail)
		return
	}
	respondWithJSON(w, http.StatusOK, rec)
}
