package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/domain"
	"travelfuse/internal/handler"
	"travelfuse/internal/parser"
	"travelfuse/internal/planexport"
	"travelfuse/internal/planner"
	"travelfuse/internal/service"
	"travelfuse/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newPlanHandler() (*handler.PlanHandler, *mocks.MockPlanService) {
	svc := new(mocks.MockPlanService)
	return handler.NewPlanHandler(svc, "csv"), svc
}

func jsonRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPlanHandler_Parse_Success(t *testing.T) {
	h, svc := newPlanHandler()

	input := service.ParsePlanInput{
		Content:  "北京三日游",
		Metadata: domain.PlanMetadata{Destination: "北京", TotalDays: 3},
	}
	result := &planner.Result{
		Succeeded: true,
		Data:      &domain.TravelPlan{PlanMetadata: input.Metadata, Overview: "北京三日游"},
		Errors:    []string{},
		Warnings:  []string{"未找到住宿信息"},
		ModuleResults: planner.ModuleResults{
			Accommodation: parser.Success(domain.AccommodationData{}, "未找到住宿信息"),
		},
		Performance: planner.Performance{SuccessRate: 0.25, ModuleCount: 4},
	}
	svc.On("ParsePlan", mock.Anything, input).Return(result, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/parse",
		`{"content":"北京三日游","metadata":{"destination":"北京","total_days":3}}`)

	h.Parse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["succeeded"])
	assert.Equal(t, "北京", data["data"].(map[string]interface{})["destination"])
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(4), stats["total_modules"])
	assert.Equal(t, float64(1), stats["successful_modules"])
	svc.AssertExpectations(t)
}

func TestPlanHandler_Parse_MissingContent(t *testing.T) {
	h, svc := newPlanHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/parse", `{"metadata":{"destination":"北京"}}`)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "INVALID_REQUEST", resp["error"].(map[string]interface{})["code"])
	svc.AssertNotCalled(t, "ParsePlan", mock.Anything, mock.Anything)
}

func TestPlanHandler_Parse_DomainError(t *testing.T) {
	h, svc := newPlanHandler()
	svc.On("ParsePlan", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingDestination)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/parse", `{"content":"行程"}`)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_DESTINATION", decode(t, w)["error"].(map[string]interface{})["code"])
}

func TestPlanHandler_Timeline(t *testing.T) {
	h, svc := newPlanHandler()
	activities := []domain.TimelineActivity{{Time: "09:00-12:00", Period: domain.PeriodMorning, Title: "参观故宫"}}
	out := parser.Success(activities)
	svc.On("ParseTimeline", mock.Anything, mock.Anything).Return(&out, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/timeline/parse", `{"content":"- **上午** 参观故宫"}`)

	h.Timeline(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	items := data["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "morning", items[0].(map[string]interface{})["period"])
}

func TestPlanHandler_Export(t *testing.T) {
	h, svc := newPlanHandler()
	body := append(append([]byte{}, planexport.BOM...), []byte("Section\n")...)
	svc.On("ExportPlan", mock.Anything, mock.Anything, planexport.FormatXLSX).Return(&service.ExportOutput{
		Filename:    "北京_2025-05-01.xlsx",
		ContentType: planexport.FormatXLSX.ContentType(),
		Body:        body,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/export",
		`{"content":"行程","metadata":{"destination":"北京"},"format":"xlsx"}`)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, planexport.FormatXLSX.ContentType(), w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename*=UTF-8''")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, body, w.Body.Bytes())
	svc.AssertExpectations(t)
}

func TestPlanHandler_Export_DefaultFormat(t *testing.T) {
	h, svc := newPlanHandler()
	svc.On("ExportPlan", mock.Anything, mock.Anything, planexport.FormatCSV).Return(&service.ExportOutput{
		Filename:    "plan.csv",
		ContentType: planexport.FormatCSV.ContentType(),
		Body:        []byte("x"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/export", `{"content":"行程","metadata":{"destination":"北京"}}`)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPlanHandler_Export_UnsupportedFormat(t *testing.T) {
	h, svc := newPlanHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/plans/export", `{"content":"行程","format":"pdf"}`)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decode(t, w)["error"].(map[string]interface{})["code"])
	svc.AssertNotCalled(t, "ExportPlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{domain.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE"},
		{domain.ErrInvalidStartDate, http.StatusBadRequest, "INVALID_START_DATE"},
		{domain.ErrDestinationNotFound, http.StatusNotFound, "DESTINATION_NOT_FOUND"},
		{domain.ErrEnrichmentUnavailable, http.StatusServiceUnavailable, "ENRICHMENT_UNAVAILABLE"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, code)
	}
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler.NewHealthHandler([]string{"workbook", "default"}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	handler.NewHealthHandler(nil).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
