package api

import (
	"net/http"

	"zai-proxy/internal/interfaces"
)

// ModelHandler serves the model list.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List models
// @Description  Lists the model ids accepted by /v1/chat/completions.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  model.ModelList
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.List())
}
