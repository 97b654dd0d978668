package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/service"
)

type ResponseController struct {
	ResponseService service.ResponseService
}

func NewResponseController(responseService service.ResponseService) *ResponseController {
	return &ResponseController{ResponseService: responseService}
}

func (rc *ResponseController) SubmitResponse(c *gin.Context) {
	var req service.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	response, err := rc.ResponseService.SubmitResponse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "submit response")
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (rc *ResponseController) GetResponses(c *gin.Context) {
	responses, err := rc.ResponseService.GetResponses(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch responses")
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (rc *ResponseController) GetSummary(c *gin.Context) {
	summary, err := rc.ResponseService.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "summarize responses")
		return
	}
	c.JSON(http.StatusOK, summary)
}
