package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/service"
)

type TemplateController struct {
	TemplateService service.TemplateService
}

func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

func (tc *TemplateController) GetTemplates(c *gin.Context) {
	templates, err := tc.TemplateService.GetTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetDefaultTemplates serves the built-in catalog without touching storage.
func (tc *TemplateController) GetDefaultTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, service.ListDefaultTemplates())
}

func (tc *TemplateController) GetTemplate(c *gin.Context) {
	template, err := tc.TemplateService.GetTemplateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "fetch template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	template, err := tc.TemplateService.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ValidateStructure runs the validator and reports the result as data, so
// an invalid structure still answers 200.
func (tc *TemplateController) ValidateStructure(c *gin.Context) {
	var in model.StructureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	result := service.ValidateFormStructure(in)
	c.JSON(http.StatusOK, gin.H{
		"isValid":        result.IsValid,
		"errors":         result.Errors,
		"section_count":  service.CountSections(in),
		"question_count": service.CountTotalQuestions(in),
	})
}
