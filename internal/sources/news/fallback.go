// internal/sources/news/fallback.go
package news

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/enrich"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/normalize"
	"github.com/beastaman/Sleft-Signal-sub000/internal/scoring"
)

// fallbackTemplates parameterize the synthesized article set. Days-ago
// offsets keep the recency distribution plausible.
var fallbackTemplates = []struct {
	TitleFormat string
	Description string
	DaysAgo     int
}{
	{
		"%s sector shows steady growth amid shifting demand",
		"Analysts report continued expansion as operators adapt to changing customer expectations and new market conditions.",
		2,
	},
	{
		"Local %s businesses respond to labor market pressure",
		"Hiring remains the top operational concern across the sector, with wages and retention strategies under review.",
		5,
	},
	{
		"Technology adoption accelerates across the %s industry",
		"Digital tools and automation are reshaping day-to-day operations, with early adopters reporting efficiency gains.",
		9,
	},
	{
		"Investment activity picks up in the %s space",
		"Funding rounds and acquisitions signal renewed investor confidence despite broader economic uncertainty.",
		14,
	},
	{
		"Regulatory changes on the horizon for %s operators",
		"Industry groups are tracking proposed policy updates that could affect compliance requirements next year.",
		21,
	},
}

// Fallback synthesizes a deterministic article set for the request.
// asOf anchors the published timestamps so the output is reproducible
// under test.
func Fallback(params Params, asOf time.Time) []models.NewsArticle {
	industry := strings.TrimSpace(params.Industry)
	industryKW := normalize.IndustryKeywords(industry)

	articles := make([]models.NewsArticle, 0, len(fallbackTemplates))
	for i, tmpl := range fallbackTemplates {
		article := models.NewsArticle{
			Title:       fmt.Sprintf(tmpl.TitleFormat, industry),
			Description: tmpl.Description,
			URL:         fmt.Sprintf("https://news.example/%s/%d", slug(industry), i+1),
			Source:      "Industry Digest",
			Published:   asOf.Add(-time.Duration(tmpl.DaysAgo) * 24 * time.Hour),
		}
		article.RelevanceScore = scoring.NewsRelevance(article, industry, industryKW, asOf)
		article.Category = enrich.CategorizeArticle(article)
		article.Sentiment = enrich.ArticleSentiment(article)
		article.KeyInsights = keyInsights(article, asOf)
		articles = append(articles, article)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].RelevanceScore != articles[j].RelevanceScore {
			return articles[i].RelevanceScore > articles[j].RelevanceScore
		}
		return articles[i].Published.After(articles[j].Published)
	})
	return articles
}

func slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
