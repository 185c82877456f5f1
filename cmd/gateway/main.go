package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/alizia-edu/alizia-api/api/swagger"
	"github.com/alizia-edu/alizia-api/internal/handler"
	internalmiddleware "github.com/alizia-edu/alizia-api/internal/middleware"
	"github.com/alizia-edu/alizia-api/internal/repository"
	"github.com/alizia-edu/alizia-api/internal/service"
	"github.com/alizia-edu/alizia-api/internal/state"
	"github.com/alizia-edu/alizia-api/internal/upstream"
	"github.com/alizia-edu/alizia-api/pkg/cache"
	"github.com/alizia-edu/alizia-api/pkg/config"
	"github.com/alizia-edu/alizia-api/pkg/database"
	"github.com/alizia-edu/alizia-api/pkg/export"
	"github.com/alizia-edu/alizia-api/pkg/logger"
	corsmiddleware "github.com/alizia-edu/alizia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/alizia-edu/alizia-api/pkg/middleware/requestid"
)

// @title Alizia Gateway API
// @version 0.1.0
// @description Session, wizard and planning gateway for the Alizia coordination client
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	client := upstream.New(cfg.Upstream.BaseURL, &http.Client{Timeout: cfg.Upstream.Timeout}, logr)

	sessions := state.NewManager()
	validate := validator.New()

	sessionSvc := service.NewSessionService(client, sessions, cfg.Session.Secret, cfg.Session.TTL, logr)
	documentSvc := service.NewDocumentService(client, validate, logr)
	lessonSvc := service.NewLessonService(client, validate, logr)
	metricsSvc := service.NewMetricsService()

	catalogSvc := service.NewCatalogService(client, nil, cfg.Catalog.CacheTTL, logr)
	if cfg.Catalog.CacheEnabled {
		rdb, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		} else {
			catalogSvc = service.NewCatalogService(client, repository.NewCatalogCacheRepository(rdb, logr), cfg.Catalog.CacheTTL, logr)
		}
	}

	var inclusionSvc *service.InclusionService
	if cfg.Inclusion.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Warnw("postgres unavailable, inclusion module disabled", "error", err)
		} else {
			inclusionSvc = service.NewInclusionService(repository.NewInclusionRepository(db), validate, logr)
		}
	}

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(client, export.NewPDFExporter(), logr)
	}

	sessionHandler := handler.NewSessionHandler(sessionSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	var documentHandler *handler.DocumentHandler
	if exportSvc != nil {
		documentHandler = handler.NewDocumentHandler(documentSvc, exportSvc)
	} else {
		documentHandler = handler.NewDocumentHandler(documentSvc, nil)
	}
	docWizardHandler := handler.NewDocumentWizardHandler(documentSvc)
	lessonHandler := handler.NewLessonHandler(lessonSvc)
	lessonWizardHandler := handler.NewLessonWizardHandler(lessonSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, sessions)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/session", sessionHandler.Login)

	secured := api.Group("")
	secured.Use(internalmiddleware.Session(sessionSvc))

	secured.GET("/session", sessionHandler.Info)
	secured.DELETE("/session", sessionHandler.Logout)

	catalog := secured.Group("/catalog")
	catalog.GET("/courses", catalogHandler.Courses)
	catalog.GET("/courses/:id/students", catalogHandler.CourseStudents)
	catalog.GET("/subjects", catalogHandler.Subjects)
	catalog.GET("/nuclei", catalogHandler.Nuclei)
	catalog.GET("/knowledge-areas", catalogHandler.KnowledgeAreas)
	catalog.GET("/categories", catalogHandler.Categories)
	catalog.GET("/moment-types", catalogHandler.MomentTypes)
	catalog.GET("/activities", catalogHandler.Activities)
	catalog.GET("/fonts", catalogHandler.Fonts)

	documents := secured.Group("/documents")
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.POST("/:id/publish", documentHandler.Publish)
	documents.POST("/:id/archive", documentHandler.Archive)
	documents.DELETE("/:id", documentHandler.Delete)
	documents.POST("/:id/chat", documentHandler.Chat)
	documents.POST("/:id/generate", documentHandler.Generate)
	documents.GET("/:id/export", documentHandler.Export)

	docWizard := secured.Group("/wizard/document")
	docWizard.GET("", docWizardHandler.Get)
	docWizard.PATCH("", docWizardHandler.Update)
	docWizard.POST("/nuclei/:id/toggle", docWizardHandler.ToggleNucleus)
	docWizard.POST("/categories/:id/toggle", docWizardHandler.ToggleCategory)
	docWizard.POST("/assign", docWizardHandler.Assign)
	docWizard.POST("/next", docWizardHandler.Next)
	docWizard.POST("/back", docWizardHandler.Back)
	docWizard.POST("/submit", docWizardHandler.Submit)
	docWizard.POST("/reset", docWizardHandler.Reset)

	lessons := secured.Group("")
	lessons.GET("/course-subjects", lessonHandler.CourseSubjects)
	lessons.GET("/teacher-courses", lessonHandler.TeacherCourses)
	lessons.GET("/course-subjects/:id/status", lessonHandler.Status)
	lessons.GET("/course-subjects/:id/plans", lessonHandler.Plans)
	lessons.PATCH("/lesson-plans/:id", lessonHandler.Update)
	lessons.DELETE("/lesson-plans/:id", lessonHandler.Delete)
	lessons.POST("/lesson-plans/:id/chat", lessonHandler.Chat)

	lessonWizard := secured.Group("/wizard/lesson")
	lessonWizard.GET("", lessonWizardHandler.Get)
	lessonWizard.PATCH("", lessonWizardHandler.Update)
	lessonWizard.POST("/categories/:id/toggle", lessonWizardHandler.ToggleCategory)
	lessonWizard.PUT("/moments", lessonWizardHandler.SetMoment)
	lessonWizard.POST("/next", lessonWizardHandler.Next)
	lessonWizard.POST("/back", lessonWizardHandler.Back)
	lessonWizard.POST("/submit", lessonWizardHandler.Submit)
	lessonWizard.POST("/reset", lessonWizardHandler.Reset)

	if inclusionSvc != nil {
		inclusionHandler := handler.NewInclusionHandler(inclusionSvc)
		secured.POST("/inclusion-plans", inclusionHandler.Save)
		secured.GET("/inclusion-plans", inclusionHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
