package interfaces

import (
	"context"

	"zai-proxy/internal/model"
	"zai-proxy/internal/service"
)

//go:generate mockery --name=ChatService --output=mocks --outpkg=mocks --structname=MockChatService
//go:generate mockery --name=ModelService --output=mocks --outpkg=mocks --structname=MockModelService
//go:generate mockery --name=UsageService --output=mocks --outpkg=mocks --structname=MockUsageService

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ChatService drives chat completions.
type ChatService interface {
	Prepare(req *model.ChatRequest) (*service.Exchange, error)
	StreamCompletion(ctx context.Context, token string, ex *service.Exchange, ch chan<- model.StreamFrame)
	Complete(ctx context.Context, token string, ex *service.Exchange) (*model.Chunk, error)
}

// ModelService lists the allowed models.
type ModelService interface {
	List() *model.ModelList
}

// UsageService reads the usage ledger.
type UsageService interface {
	Summaries(ctx context.Context) (*model.UsageList, error)
	Record(ctx context.Context, id string) (*model.UsageRecord, error)
}
