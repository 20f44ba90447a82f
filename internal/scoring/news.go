// internal/scoring/news.go
package scoring

import (
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// genericBusinessKeywords is the fixed list every article is checked
// against regardless of industry.
var genericBusinessKeywords = []string{
	"growth", "market", "revenue", "startup",
	"innovation", "strategy", "investment", "expansion",
}

// News scoring weights.
const (
	newsIndustryMentionBonus = 15
	newsIndustryKeywordBonus = 8
	newsGenericKeywordBonus  = 3
	newsFreshBonus           = 5 // published within 7 days
	newsRecentBonus          = 2 // published within 30 days
)

// NewsRelevance computes the ranking score of an article for a request.
// Pure: identical inputs always produce identical scores. The result is
// non-negative and unbounded; it is used for ordering only.
func NewsRelevance(article models.NewsArticle, industry string, industryKeywords []string, now time.Time) int {
	text := strings.ToLower(article.Title + " " + article.Description)
	score := 0

	if industry != "" && strings.Contains(text, strings.ToLower(industry)) {
		score += newsIndustryMentionBonus
	}

	for _, kw := range industryKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			score += newsIndustryKeywordBonus
		}
	}

	for _, kw := range genericBusinessKeywords {
		if strings.Contains(text, kw) {
			score += newsGenericKeywordBonus
		}
	}

	if !article.Published.IsZero() {
		age := now.Sub(article.Published)
		switch {
		case age <= 7*24*time.Hour:
			score += newsFreshBonus
		case age <= 30*24*time.Hour:
			score += newsRecentBonus
		}
	}

	return score
}
