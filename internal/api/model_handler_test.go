package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"zai-proxy/internal/api"
	"zai-proxy/internal/interfaces/mocks"
	"zai-proxy/internal/model"
)

func TestModelHandler_HandleListModels(t *testing.T) {
	mockModelSvc := mocks.NewMockModelService(t)
	handler := api.NewModelHandler(mockModelSvc)
	mockModelSvc.On("List").Return(&model.ModelList{
		Object:  "list",
		Data:    []model.ModelEntry{{ID: "glm-4.6", Name: "GLM-4.6"}},
		Success: true,
	}).Once()

	rr := httptest.NewRecorder()
	handler.HandleListModels(rr, httptest.NewRequest(http.MethodGet, "/v1/models", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"object":"list","data":[{"id":"glm-4.6","name":"GLM-4.6"}],"success":true}`, rr.Body.String())
}
