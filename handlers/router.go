package handlers

import (
	"net/http"
	"time"

	"github.com/askbook/askbook-api/internal/artifacts"
	cataloghandler "github.com/askbook/askbook-api/internal/catalog/handler"
	catalogservice "github.com/askbook/askbook-api/internal/catalog/service"
	"github.com/askbook/askbook-api/internal/identity"
	"github.com/askbook/askbook-api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Welcome is the body of GET /.
const Welcome = "Welcome to the AskBook API!"

// Dependencies are the shared adapters handed to every handler. They are built
// once at startup and must be safe for concurrent use.
type Dependencies struct {
	Identity *identity.Service
	Catalog  catalogservice.Service
	Fetcher  *artifacts.Fetcher
	Checks   map[string]ReadinessCheck
	Gatherer prometheus.Gatherer
	Started  time.Time
}

// NewRouter builds the HTTP engine: cross-cutting middleware, the API routes and
// an explicit not-found handler.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(), gin.Logger(), gin.Recovery(), middleware.RequestMetrics())

	root := r.Group("/")
	NewAuthHandler(deps.Identity).Register(root)
	cataloghandler.RegisterBookRoutes(root, deps.Catalog)
	NewModelHandler(deps.Fetcher).Register(root)

	root.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Welcome)
	})

	started := deps.Started
	if started.IsZero() {
		started = time.Now()
	}
	RegisterHealth(root, started, deps.Checks)
	RegisterSwagger(root)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	root.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	notFound := func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	}
	r.NoRoute(notFound)
	r.NoMethod(notFound)
	return r
}
