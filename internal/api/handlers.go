// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/normalize"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/news"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/places"
	"github.com/beastaman/Sleft-Signal-sub000/internal/store"
)

type generateSummary struct {
	CompetitorsAnalyzed int    `json:"competitorsAnalyzed"`
	LeadsGenerated      int    `json:"leadsGenerated"`
	NewsArticles        int    `json:"newsArticles"`
	MarketSaturation    string `json:"marketSaturation"`
}

func (s *Server) handleGenerate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "unreadable request body",
		})
	}

	missing, err := validateGenerateRequest(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "request body is not valid JSON",
		})
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":    "Missing required fields",
			"required": missing,
		})
	}

	var req models.SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "request body is not valid JSON",
		})
	}

	brief, err := s.generator.GenerateBrief(c.Request().Context(), req)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeValidationFailed {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":    "Missing required fields",
				"required": req.MissingFields(),
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "brief generation failed",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"briefId": brief.ID,
		"summary": generateSummary{
			CompetitorsAnalyzed: len(brief.BusinessData.Competitors),
			LeadsGenerated:      len(brief.BusinessData.Leads),
			NewsArticles:        len(brief.NewsData.Articles),
			MarketSaturation:    brief.BusinessData.MarketAnalysis.Saturation,
		},
	})
}

func (s *Server) handleGetBrief(c echo.Context) error {
	brief, err := s.generator.GetBrief(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeBriefNotFound {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"error": "brief not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "brief lookup failed",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"brief":   brief,
	})
}

type leadsRequest struct {
	BriefID  string `json:"briefId"`
	LeadType string `json:"leadType,omitempty"`
	MinScore int    `json:"minScore,omitempty"`
}

func (s *Server) handleLeads(c echo.Context) error {
	var req leadsRequest
	if err := c.Bind(&req); err != nil || req.BriefID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":    "Missing required fields",
			"required": []string{"briefId"},
		})
	}

	leads, err := s.lookupLeads(c, req)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeBriefNotFound {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"error": "brief not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "lead lookup failed",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"leads":   leads,
		"count":   len(leads),
	})
}

// lookupLeads prefers the lead table; without one it filters the
// stored brief's leads in memory.
func (s *Server) lookupLeads(c echo.Context, req leadsRequest) ([]models.LeadRecord, error) {
	ctx := c.Request().Context()
	if s.leads != nil {
		return s.leads.FilterLeads(ctx, store.LeadFilter{
			BriefID:  req.BriefID,
			LeadType: req.LeadType,
			MinScore: req.MinScore,
		})
	}

	brief, err := s.generator.GetBrief(ctx, req.BriefID)
	if err != nil {
		return nil, err
	}
	var leads []models.LeadRecord
	for _, lead := range brief.BusinessData.Leads {
		if req.LeadType != "" && lead.LeadType != req.LeadType {
			continue
		}
		if lead.LeadScore < req.MinScore {
			continue
		}
		leads = append(leads, lead)
	}
	// Same order as the lead table's lead_score DESC.
	places.SortLeads(leads)
	return leads, nil
}

func (s *Server) handleIntelligence(c echo.Context) error {
	industry := c.Param("industry")
	category := c.QueryParam("category")
	ctx := c.Request().Context()

	var articles []models.NewsArticle
	fromIndex := false
	if s.intel != nil {
		indexed, err := s.intel.SearchArticles(ctx, industry, category, 20)
		if err == nil && len(indexed) > 0 {
			articles = indexed
			fromIndex = true
		}
	}

	// Index miss falls through to a live provider fetch.
	if !fromIndex && s.liveNews != nil {
		live, err := s.liveNews.Fetch(ctx, news.Params{
			Industry: industry,
			Location: normalize.ParseLocation(""),
		})
		if err == nil {
			articles = filterByCategory(live, category)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"industry":  industry,
		"articles":  articles,
		"count":     len(articles),
		"fromIndex": fromIndex,
	})
}

func filterByCategory(articles []models.NewsArticle, category string) []models.NewsArticle {
	if category == "" {
		return articles
	}
	var filtered []models.NewsArticle
	for _, article := range articles {
		if article.Category == category {
			filtered = append(filtered, article)
		}
	}
	return filtered
}
