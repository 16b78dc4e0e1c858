package handler

import (
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	TestRecord *TestRecordHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		TestRecord: NewTestRecordHandler(s, services.TestRecord),
		Health:     NewHealthHandler(s, services.TestRecord),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
