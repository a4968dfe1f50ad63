package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"travelfuse/internal/domain"
	"travelfuse/internal/planexport"
	"travelfuse/internal/planner"
	"travelfuse/internal/service"
)

// PlanHandler handles itinerary parsing and export endpoints.
type PlanHandler struct {
	planSvc       service.PlanService
	defaultFormat planexport.Format
}

// NewPlanHandler creates a new PlanHandler. An invalid defaultFormat falls back to CSV.
func NewPlanHandler(planSvc service.PlanService, defaultFormat string) *PlanHandler {
	f, err := planexport.ParseFormat(defaultFormat)
	if err != nil {
		f = planexport.FormatCSV
	}
	return &PlanHandler{planSvc: planSvc, defaultFormat: f}
}

type parsePlanRequest struct {
	Content  string              `json:"content" binding:"required"`
	Metadata domain.PlanMetadata `json:"metadata"`
}

type exportPlanRequest struct {
	parsePlanRequest
	Format string `json:"format"`
}

type parsePlanResponse struct {
	*planner.Result
	Stats planner.Stats `json:"stats"`
}

func (r parsePlanRequest) input() service.ParsePlanInput {
	return service.ParsePlanInput{Content: r.Content, Metadata: r.Metadata}
}

// Parse handles POST /api/v1/plans/parse
// @Summary Parse an itinerary
// @Description Parse a free-form itinerary into a travel plan fused with enrichment data
// @Tags plans
// @Accept json
// @Produce json
// @Param request body parsePlanRequest true "Itinerary text and plan metadata"
// @Success 200 {object} APIResponse{data=parsePlanResponse} "Fused plan with diagnostics and stats"
// @Failure 400 {object} APIResponse "Invalid request, empty content or missing destination"
// @Failure 413 {object} APIResponse "Itinerary too large"
// @Router /plans/parse [post]
func (h *PlanHandler) Parse(c *gin.Context) {
	var req parsePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	res, err := h.planSvc.ParsePlan(c.Request.Context(), req.input())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, parsePlanResponse{Result: res, Stats: res.Stats()})
}

// Timeline handles POST /api/v1/timeline/parse
// @Summary Parse a timeline
// @Description Extract only the daily timeline activities from an itinerary
// @Tags timeline
// @Accept json
// @Produce json
// @Param request body parsePlanRequest true "Itinerary text; metadata.destination is optional"
// @Success 200 {object} APIResponse{data=parser.Outcome[[]domain.TimelineActivity]} "Timeline activities"
// @Failure 400 {object} APIResponse "Invalid request or empty content"
// @Router /timeline/parse [post]
func (h *PlanHandler) Timeline(c *gin.Context) {
	var req parsePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	out, err := h.planSvc.ParseTimeline(c.Request.Context(), req.input())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// Export handles POST /api/v1/plans/export
// @Summary Export a plan
// @Description Parse an itinerary and download the plan as CSV or XLSX
// @Tags plans
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body exportPlanRequest true "Itinerary text, plan metadata and format (csv, xlsx)"
// @Success 200 {file} file "Plan export"
// @Failure 400 {object} APIResponse "Invalid request or unsupported format"
// @Failure 413 {object} APIResponse "Itinerary too large"
// @Router /plans/export [post]
func (h *PlanHandler) Export(c *gin.Context) {
	var req exportPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	format := h.defaultFormat
	if req.Format != "" {
		f, err := planexport.ParseFormat(req.Format)
		if err != nil {
			HandleError(c, err)
			return
		}
		format = f
	}

	out, err := h.planSvc.ExportPlan(c.Request.Context(), req.input(), format)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(out.Filename)))
	c.Data(http.StatusOK, out.ContentType, out.Body)
}
