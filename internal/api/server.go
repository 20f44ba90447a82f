// internal/api/server.go
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/news"
	"github.com/beastaman/Sleft-Signal-sub000/internal/store"
)

// BriefGenerator is the pipeline surface the API depends on.
type BriefGenerator interface {
	GenerateBrief(ctx context.Context, req models.SearchRequest) (*models.Brief, error)
	GetBrief(ctx context.Context, id string) (*models.Brief, error)
}

// LeadReader serves the lead query endpoint. Optional; without it lead
// queries filter the stored brief in memory.
type LeadReader interface {
	FilterLeads(ctx context.Context, filter store.LeadFilter) ([]models.LeadRecord, error)
}

// IntelligenceReader serves indexed industry articles. Optional.
type IntelligenceReader interface {
	SearchArticles(ctx context.Context, industry, category string, limit int) ([]models.NewsArticle, error)
}

// LiveNewsSource backs the intelligence endpoint when the index has
// nothing for an industry.
type LiveNewsSource interface {
	Fetch(ctx context.Context, params news.Params) ([]models.NewsArticle, error)
}

// Server is the HTTP front of the brief generator.
type Server struct {
	echo      *echo.Echo
	generator BriefGenerator
	leads     LeadReader
	intel     IntelligenceReader
	liveNews  LiveNewsSource
	logger    logger.Logger
}

// Options carry the optional collaborators of the server.
type Options struct {
	Leads    LeadReader
	Intel    IntelligenceReader
	LiveNews LiveNewsSource
}

func NewServer(generator BriefGenerator, opts Options, log logger.Logger) *Server {
	s := &Server{
		echo:      echo.New(),
		generator: generator,
		leads:     opts.Leads,
		intel:     opts.Intel,
		liveNews:  opts.LiveNews,
		logger:    log.With(map[string]interface{}{"component": "api"}),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestLogging(s.logger))

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.GET("/briefs/:id", s.handleGetBrief)
	api.POST("/leads", s.handleLeads)
	api.GET("/intelligence/:industry", s.handleIntelligence)

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
