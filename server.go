package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/compliance"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/handlers"
	"github.com/mmdatafocus/practice_backend/middlewares"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/storage"
	"github.com/mmdatafocus/practice_backend/utils"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// customErrorLogger logs only requests that accumulated gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	r.POST("/auth/login", h.Login)

	api := r.Group("/api", middlewares.RequireAuth())
	api.POST("/auth/logout", h.Logout)

	api.POST("/clients", h.CreateClient)
	api.GET("/clients", h.ListClients)
	api.GET("/clients/:id", h.GetClient)
	api.PUT("/clients/:id", h.UpdateClient)
	api.DELETE("/clients/:id", h.DeleteClient)

	api.POST("/services", h.CreateService)
	api.GET("/services", h.ListServices)
	api.GET("/services/:id", h.GetService)
	api.PUT("/services/:id", h.UpdateService)
	api.DELETE("/services/:id", h.DeleteService)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.POST("/compliance", h.CreateComplianceItem)
	api.GET("/compliance", h.ListComplianceItems)
	api.GET("/compliance/overdue", h.GetOverdueComplianceItems)
	api.GET("/compliance/upcoming", h.GetUpcomingComplianceItems)
	api.GET("/compliance/statistics", h.ComplianceStatistics)
	api.GET("/compliance/export", h.ExportDeadlines)
	api.POST("/compliance/bulk-status", h.BulkUpdateStatus)
	api.GET("/compliance/:id", h.GetComplianceItem)
	api.PUT("/compliance/:id", h.UpdateComplianceItem)
	api.DELETE("/compliance/:id", h.DeleteComplianceItem)
	api.POST("/compliance/:id/filed", h.MarkFiled)
	api.POST("/compliance/:id/overdue", h.MarkOverdue)
	api.POST("/compliance/:id/tasks", h.CreateTaskFromComplianceItem)
	api.GET("/compliance/:id/tasks", h.GetTasksForComplianceItem)
	api.POST("/compliance/tasks/overdue", h.CreateTasksForOverdue)
	api.POST("/compliance/tasks/upcoming", h.CreateTasksForUpcoming)
	api.POST("/compliance/escalate", h.EscalateOverdueCompliance)
	api.POST("/compliance/reconcile", h.ReconcileFromServices)
	api.POST("/compliance/cleanup/invalid-clients", h.CleanupInvalidClients)
	api.POST("/compliance/cleanup/duplicates", h.CleanupDuplicates)

	api.POST("/documents", h.CreateDocument)
	api.GET("/documents", h.ListDocuments)
	api.GET("/documents/:id", h.GetDocument)
	api.DELETE("/documents/:id", h.DeleteDocument)
	api.POST("/documents/sign-upload", h.SignDocumentUpload)
	api.POST("/documents/upload", h.UploadDocument)

	api.POST("/letter-templates", h.CreateLetterTemplate)
	api.GET("/letter-templates", h.ListLetterTemplates)
	api.GET("/letter-templates/:id", h.GetLetterTemplate)
	api.PUT("/letter-templates/:id", h.UpdateLetterTemplate)
	api.DELETE("/letter-templates/:id", h.DeleteLetterTemplate)

	admin := api.Group("", middlewares.RequireAdmin())
	admin.POST("/users", h.CreateUser)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server before the DB is ready so the startup probe
	// passes; app endpoints return 503 until dependencies connect.
	r := gin.New()
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist; deny all if unset.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.Migrate()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	engine := compliance.NewEngine(
		storage.NewGormStore[models.ComplianceItem](db, logger),
		storage.NewGormStore[models.Task](db, logger),
		models.GormClientDirectory{},
		models.GormServiceDirectory{},
		logger,
	)
	registerRoutes(r, handlers.New(engine))

	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	go compliance.NewScheduler(engine, logger, config.GetRedisLock()).Run(schedulerCtx)

	logger.WithFields(logrus.Fields{
		"port": port,
	}).Info("practice backend started")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop the scheduler first so it does not start new work during drain.
	cancelScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
