package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unidb/internal/app/controllers"
	"github.com/yigit/unidb/internal/app/models"
	appRepos "github.com/yigit/unidb/internal/app/repositories"
	appRoutes "github.com/yigit/unidb/internal/app/routes"
	appServices "github.com/yigit/unidb/internal/app/services"
	"github.com/yigit/unidb/internal/app/views"
	"github.com/yigit/unidb/internal/config"
	appMiddleware "github.com/yigit/unidb/internal/middleware"
	"github.com/yigit/unidb/internal/pkg/helpers"
	"github.com/yigit/unidb/internal/pkg/logger"
	"github.com/yigit/unidb/internal/pkg/metrics"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	Metrics          *metrics.Metrics
	EntityService    *appServices.EntityService
	PageController   *appControllers.PageController
	ModuleController *appControllers.ModuleController
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies checks the module table and initializes the session
// store, services, and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	for _, m := range models.Modules {
		if err := m.Validate(); err != nil {
			lgr.Error().Err(err).Str("module", m.Name).Msg("Invalid module descriptor")
			return nil, fmt.Errorf("invalid module %q: %w", m.Name, err)
		}
	}

	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories()
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		deps.Repos.SessionRepository.OnChange(deps.Metrics.SetSessions)
	}

	deps.EntityService = appServices.NewEntityService(deps.Repos.SessionRepository, deps.Metrics, lgr)

	deps.PageController = appControllers.NewPageController(deps.EntityService)
	deps.ModuleController = appControllers.NewModuleController(deps.EntityService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates, and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.Session(appMiddleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.SecureCookie,
		}),
		appMiddleware.RequestLogger(lgr),
	)

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, models.Modules, deps.PageController, deps.ModuleController)

	if deps.Metrics != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}

// SessionTimings returns the sweep interval and idle timeout, falling back to
// the defaults when the configured values do not parse.
func SessionTimings(cfg *config.Config) (interval, idle time.Duration) {
	interval = helpers.ParseDuration(cfg.Session.SweepInterval, time.Minute)
	idle = helpers.ParseDuration(cfg.Session.IdleTimeout, 30*time.Minute)
	return interval, idle
}
