package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/config"
	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/interfaces/http/handlers"
	"supportarchive/internal/interfaces/http/middleware"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/services/render"
)

// Router wires the read-only archive API.
type Router struct {
	engine           *gin.Engine
	browseHandler    *handlers.BrowseHandler
	ticketHandler    *handlers.TicketHandler
	kbHandler        *handlers.KBHandler
	helpHandler      *handlers.HelpHandler
	analyticsHandler *handlers.AnalyticsHandler
}

// NewRouter creates a new HTTP router with all dependencies. archiveDB
// is the primary store with the kb schema attached when available;
// helpDB may be nil when the help store is absent.
func NewRouter(archiveDB *gorm.DB, helpDB *gorm.DB, kbAttached bool, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.SecurityHeaders())
	if len(cfg.Server.AllowedOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}

	renderer := render.NewRenderService()

	browseRepo := repository.NewBrowseRepository(archiveDB, kbAttached)
	ticketRepo := repository.NewTicketRepository(archiveDB)
	kbRepo := repository.NewKBRepository(archiveDB, kbAttached)
	helpRepo := repository.NewHelpRepository(helpDB)
	analyticsRepo := repository.NewAnalyticsRepository(archiveDB)

	router := &Router{
		engine:           engine,
		browseHandler:    handlers.NewBrowseHandler(browseRepo, log),
		ticketHandler:    handlers.NewTicketHandler(ticketRepo, renderer, log),
		kbHandler:        handlers.NewKBHandler(kbRepo, renderer, log),
		helpHandler:      handlers.NewHelpHandler(helpRepo, renderer, log),
		analyticsHandler: handlers.NewAnalyticsHandler(analyticsRepo, log),
	}
	router.registerRoutes()
	return router
}

func (r *Router) registerRoutes() {
	api := r.engine.Group("/api")

	api.GET("/browse", r.browseHandler.List)
	api.GET("/browse/facets", r.browseHandler.Facets)

	api.GET("/tickets/:number", r.ticketHandler.Detail)

	kb := api.Group("/kb")
	{
		kb.GET("/articles", r.kbHandler.List)
		kb.GET("/articles/:id", r.kbHandler.Detail)
		kb.GET("/categories", r.kbHandler.Categories)
	}

	help := api.Group("/help")
	{
		help.GET("/articles", r.helpHandler.List)
		help.GET("/articles/:id", r.helpHandler.Detail)
		help.GET("/a/*slug", r.helpHandler.DetailBySlug)
		help.GET("/navigation", r.helpHandler.Navigation)
		help.GET("/search", r.helpHandler.Search)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", r.analyticsHandler.Summary)
		analytics.GET("/tickets-by-customer", r.analyticsHandler.TicketsByCustomer)
		analytics.GET("/category-breakdown", r.analyticsHandler.CategoryBreakdown)
		analytics.GET("/source-distribution", r.analyticsHandler.SourceDistribution)
	}

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Run starts the HTTP server on the given address.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Engine exposes the underlying gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
