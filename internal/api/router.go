package api

import (
	"github.com/gin-gonic/gin"

	"github.com/creolweb/jobintake/internal/api/handler"
	"github.com/creolweb/jobintake/internal/api/middleware"
	"github.com/creolweb/jobintake/internal/config"
	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/service"
)

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - submissions: submission pipeline and record lifecycle service.
//   - sweeper: retention sweeper for the manual trigger endpoint.
//   - cfg: server configuration.
//   - log: base logger injected into request contexts.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(
	submissions *service.SubmissionService,
	sweeper *service.Sweeper,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	submissionHandler := handler.NewSubmissionHandler(submissions, cfg.Intake.FormID)
	jobHandler := handler.NewJobHandler(submissions, sweeper)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Intake channel
		v1.POST("/submissions", submissionHandler.Create)

		// Moderation surface
		v1.GET("/jobs", jobHandler.List)
		v1.GET("/jobs/:id", jobHandler.Get)
		v1.POST("/jobs/:id/publish", jobHandler.Publish)
		v1.DELETE("/jobs/:id", jobHandler.Delete)

		// Categories and stats
		v1.GET("/categories", jobHandler.Categories)
		v1.GET("/stats", jobHandler.Stats)

		// Manual retention sweep
		v1.POST("/sweep", jobHandler.Sweep)
	}

	return r
}
