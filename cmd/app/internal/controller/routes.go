package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/service"
	"teamfeedback-backend/pkg/middleware"
	"teamfeedback-backend/utilities"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Events    service.EventService
	Users     service.UserService
	Templates service.TemplateService
	Forms     service.FormService
	Responses service.ResponseService
	Analytics service.AnalyticsService
	Reports   service.ReportService
	Embed     service.EmbedService
}

type RouteOptions struct {
	// CoachAuth puts authoring and reporting routes behind a coach token.
	CoachAuth bool
	RateLimit middleware.RateLimitConfig
	Metrics   *middleware.Metrics
	APIBase   string
	Ping      func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, s Services, opts RouteOptions) {
	r.SetHTMLTemplate(LoadTemplates())

	coach := utilities.CoachAuthMiddleware(opts.CoachAuth)

	healthCtrl := NewHealthController(opts.Ping)
	r.GET("/health", healthCtrl.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics.Handler())
	}

	// Event routes.
	eventCtrl := NewEventController(s.Events)
	eventRoutes := r.Group("/events")
	{
		eventRoutes.GET("", eventCtrl.GetEvents)
		eventRoutes.GET("/:id", eventCtrl.GetEvent)
		eventRoutes.POST("", coach, eventCtrl.CreateEvent)
	}

	// User routes.
	userCtrl := NewUserController(s.Users)
	r.GET("/users/:id", userCtrl.GetUser)

	// Template routes.
	templateCtrl := NewTemplateController(s.Templates)
	templateRoutes := r.Group("/templates")
	{
		templateRoutes.GET("", templateCtrl.GetTemplates)
		templateRoutes.GET("/defaults", templateCtrl.GetDefaultTemplates)
		templateRoutes.GET("/:id", templateCtrl.GetTemplate)
		templateRoutes.POST("", coach, templateCtrl.CreateTemplate)
		templateRoutes.POST("/validate", templateCtrl.ValidateStructure)
	}

	// Form routes.
	formCtrl := NewFormController(s.Forms)
	responseCtrl := NewResponseController(s.Responses)
	analyticsCtrl := NewAnalyticsController(s.Forms, s.Analytics, s.Reports)
	formRoutes := r.Group("/forms")
	{
		formRoutes.GET("", formCtrl.GetForms)
		formRoutes.GET("/:id", formCtrl.GetForm)
		formRoutes.POST("", coach, formCtrl.CreateForm)
		formRoutes.PATCH("/:id/status", coach, formCtrl.UpdateStatus)

		formRoutes.POST("/:id/responses", middleware.RateLimitMiddleware(opts.RateLimit), responseCtrl.SubmitResponse)
		formRoutes.GET("/:id/responses", coach, responseCtrl.GetResponses)
		formRoutes.GET("/:id/summary", coach, responseCtrl.GetSummary)
		formRoutes.GET("/:id/analytics/preview", coach, analyticsCtrl.GetPreview)
		formRoutes.GET("/:id/report.pdf", coach, analyticsCtrl.DownloadReport)
	}

	// Embed routes.
	embedCtrl := NewEmbedController(s.Embed, s.Events, s.Forms, opts.APIBase)
	r.GET("/embed", embedCtrl.Render)
	r.POST("/embed/tokens", coach, embedCtrl.CreateToken)
}
