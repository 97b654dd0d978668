package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/service"
)

type AnalyticsController struct {
	FormService      service.FormService
	AnalyticsService service.AnalyticsService
	ReportService    service.ReportService
}

func NewAnalyticsController(formService service.FormService, analyticsService service.AnalyticsService, reportService service.ReportService) *AnalyticsController {
	return &AnalyticsController{
		FormService:      formService,
		AnalyticsService: analyticsService,
		ReportService:    reportService,
	}
}

// GetPreview returns synthetic numbers for dashboard mock-ups. The form must
// exist but its responses are not read.
func (ac *AnalyticsController) GetPreview(c *gin.Context) {
	if _, err := ac.FormService.GetFormByID(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "generate analytics preview")
		return
	}
	c.JSON(http.StatusOK, ac.AnalyticsService.GenerateSummary())
}

func (ac *AnalyticsController) DownloadReport(c *gin.Context) {
	id := c.Param("id")
	var buf bytes.Buffer
	if err := ac.ReportService.WriteFormReport(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err, "generate report")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=form-%s-report.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
