package controller

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/service"
	"teamfeedback-backend/utilities"
)

//go:embed templates/*.html
var templateFS embed.FS

const embedTemplate = "embed.html"

// LoadTemplates parses the embedded HTML pages.
func LoadTemplates() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type embedPage struct {
	Error    string
	Event    *model.Event
	Forms    []model.Form
	UserType string
	UserID   string
	APIBase  string
}

type EmbedController struct {
	EmbedService service.EmbedService
	EventService service.EventService
	FormService  service.FormService
	APIBase      string
}

func NewEmbedController(embedService service.EmbedService, eventService service.EventService, formService service.FormService, apiBase string) *EmbedController {
	return &EmbedController{
		EmbedService: embedService,
		EventService: eventService,
		FormService:  formService,
		APIBase:      apiBase,
	}
}

// CreateToken signs an embed link for a coach to paste into an iframe.
func (ec *EmbedController) CreateToken(c *gin.Context) {
	var req service.EmbedContext
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	link, err := ec.EmbedService.CreateLink(req)
	if err != nil {
		respondError(c, err, "create embed link")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Render serves the iframe page. Parameter problems are shown inline so the
// host page never embeds a blank frame.
func (ec *EmbedController) Render(c *gin.Context) {
	var (
		ctx service.EmbedContext
		err error
	)
	if token := c.Query("token"); token != "" {
		ctx, err = ec.EmbedService.ParseToken(token)
	} else {
		ctx, err = service.ParseEmbedParams(c.Query("event_id"), c.Query("user_type"), c.Query("user_id"))
	}
	if err != nil {
		ec.renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	event, err := ec.EventService.GetEventByID(c.Request.Context(), ctx.EventID)
	if err != nil {
		ec.renderError(c, http.StatusNotFound, service.ErrEventNotFound.Error())
		return
	}
	forms, err := ec.FormService.GetActiveFormsByEvent(c.Request.Context(), ctx.EventID)
	if err != nil {
		utilities.Error("Failed to load forms for embed of event %s: %v", ctx.EventID, err)
		ec.renderError(c, http.StatusInternalServerError, "Failed to load feedback forms")
		return
	}

	c.HTML(http.StatusOK, embedTemplate, embedPage{
		Event:    event,
		Forms:    forms,
		UserType: ctx.UserType,
		UserID:   ctx.UserID,
		APIBase:  ec.APIBase,
	})
}

func (ec *EmbedController) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, embedTemplate, embedPage{Error: msg})
}
