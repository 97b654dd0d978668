package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/service"
)

type FormController struct {
	FormService service.FormService
}

func NewFormController(formService service.FormService) *FormController {
	return &FormController{FormService: formService}
}

func (fc *FormController) GetForms(c *gin.Context) {
	forms, err := fc.FormService.GetForms(c.Request.Context(), c.Query("event_id"))
	if err != nil {
		respondError(c, err, "fetch forms")
		return
	}
	c.JSON(http.StatusOK, forms)
}

func (fc *FormController) GetForm(c *gin.Context) {
	form, err := fc.FormService.GetFormByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch form")
		return
	}
	c.JSON(http.StatusOK, form)
}

func (fc *FormController) CreateForm(c *gin.Context) {
	var req service.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: template_id and event_id are required"})
		return
	}
	form, err := fc.FormService.CreateForm(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create form")
		return
	}
	c.JSON(http.StatusCreated, form)
}

func (fc *FormController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: status is required"})
		return
	}
	form, err := fc.FormService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "update form status")
		return
	}
	c.JSON(http.StatusOK, form)
}
