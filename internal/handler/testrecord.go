package handler

import (
	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/service"
	"github.com/labstack/echo/v4"
)

// TestRecordHandler serves the submit and fetch endpoints.
type TestRecordHandler struct {
	Handler
	testRecordService *service.TestRecordService
}

func NewTestRecordHandler(s *server.Server, testRecordService *service.TestRecordService) *TestRecordHandler {
	return &TestRecordHandler{
		Handler:           NewHandler(s),
		testRecordService: testRecordService,
	}
}

// Submit stores the outcome of one submission and replies with "OK" or the
// rejection text.
func (h *TestRecordHandler) Submit(c echo.Context, req *SubmitTestRecordRequest) (string, error) {
	outcome, err := h.testRecordService.Submit(c.Request().Context(), req.Method, req.UploadValue)
	if err != nil {
		return "", err
	}
	return outcome.ResponseText(), nil
}

// Fetch returns the stored record.
func (h *TestRecordHandler) Fetch(c echo.Context, _ *FetchTestRecordRequest) (model.FetchResponse, error) {
	return h.testRecordService.Fetch(c.Request().Context())
}
