package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/term"

	"teamfeedback-backend/cmd/app/internal/controller"
	"teamfeedback-backend/internal/config"
	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
	"teamfeedback-backend/internal/service"
	"teamfeedback-backend/pkg/middleware"
	"teamfeedback-backend/utilities"
)

const appVersion = "1.0.0"

func main() {
	configPath := flag.String("config", "config.xml", "path to the XML configuration")
	seedOnly := flag.Bool("seed", false, "seed the default templates and exit")
	issueToken := flag.String("issue-token", "", "print an access token for the given user id and exit")
	flag.Parse()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		printStartUpBanner()
	}

	// Load XML configuration from file.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utilities.SetupLogging(utilities.LogOptions{
		Dir:        cfg.Logging.Dir,
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer utilities.Sync()

	if cfg.Context.TimeZone != "" {
		if loc, err := time.LoadLocation(cfg.Context.TimeZone); err == nil {
			time.Local = loc
		} else {
			utilities.Warn("Unknown time zone %q, keeping %s", cfg.Context.TimeZone, time.Local)
		}
	}
	utilities.SetAccessSecret(cfg.Authentication.AccessSecret)

	// Initialize DB using the loaded config.
	if err := db.InitDBFromConfig(cfg); err != nil {
		utilities.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	if cfg.DB.Initialize || *seedOnly {
		if err := db.Migrate(db.GetDB()); err != nil {
			utilities.Error("Migration failed: %v", err)
			os.Exit(1)
		}
	}

	gw := db.NewQueryExecutor(db.GetDB())

	// Create repositories.
	eventRepo := repository.NewEventRepository(gw)
	userRepo := repository.NewUserRepository(gw)
	templateRepo := repository.NewTemplateRepository(gw)
	formRepo := repository.NewFormRepository(gw)
	responseRepo := repository.NewResponseRepository(gw)

	// Create services.
	templateService := service.NewTemplateService(templateRepo)
	formService := service.NewFormService(formRepo, templateRepo, eventRepo)
	responseService := service.NewResponseService(responseRepo, formService, utilities.GlobalEventBus)
	services := controller.Services{
		Events:    service.NewEventService(eventRepo),
		Users:     service.NewUserService(userRepo),
		Templates: templateService,
		Forms:     formService,
		Responses: responseService,
		Analytics: service.NewAnalyticsService(nil),
		Reports:   service.NewReportService(formService, responseService),
		Embed: service.NewEmbedService(
			cfg.Embed.Secret,
			time.Duration(cfg.Embed.TokenTTL)*time.Hour,
			cfg.Embed.PublicBase,
		),
	}

	if *seedOnly {
		os.Exit(runSeed(templateService))
	}
	if *issueToken != "" {
		os.Exit(runIssueToken(userRepo, *issueToken, cfg.Authentication.SessionTimeout))
	}
	if cfg.DB.SeedCatalog {
		runSeed(templateService)
	}

	shutdownTracer := func(context.Context) {}
	if cfg.Tracing.Enabled {
		shutdownTracer, err = initTracer(cfg.Tracing.ServiceName)
		if err != nil {
			utilities.Error("Failed to set up tracing: %v", err)
			os.Exit(1)
		}
	}
	defer shutdownTracer(context.Background())

	metrics := middleware.NewMetrics()
	metrics.CountSubmissions(utilities.GlobalEventBus, service.EventResponseSubmitted)
	utilities.GlobalEventBus.Subscribe(service.EventResponseSubmitted, logSubmission)

	// Initialize Gin router.
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(metrics.Middleware())
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	// CORS configuration.
	origins := cfg.Context.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: len(cfg.Context.AllowedOrigins) > 0,
		MaxAge:           12 * time.Hour,
	}))

	controller.RegisterRoutes(r, services, controller.RouteOptions{
		CoachAuth: cfg.Authentication.EnableTokenAuth,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
		Metrics: metrics,
		APIBase: cfg.Context.Path,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.GetDB().DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	utilities.Info("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		utilities.Error("Server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("FEEDBACK", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("TEAM FEEDBACK API (v%s)\n\n", appVersion)
}

// logSubmission records each stored response in the application log.
func logSubmission(data interface{}) {
	if r, ok := data.(model.Response); ok {
		utilities.Info("Response %s submitted to form %s (anonymous=%t, %d answers)",
			r.ID, r.FormID, r.IsAnonymous, len(r.Answers))
	}
}
