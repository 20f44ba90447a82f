// internal/enrich/categorize.go
package enrich

import (
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Default buckets assigned when no rule matches. Every record always
// lands in exactly one category.
const (
	DefaultEventCategory = "Professional Networking"
	DefaultNewsCategory  = "Industry News"
)

// categoryRule maps substrings to a category label. Rules are evaluated
// in order and the first match wins; the order is part of the contract
// and must not be reshuffled.
type categoryRule struct {
	Substrings []string
	Category   string
}

var eventCategoryRules = []categoryRule{
	{[]string{"startup", "entrepreneur"}, "Startup & Entrepreneurship"},
	{[]string{"invest", "funding", "venture"}, "Investment & Funding"},
	{[]string{"tech", "software", "developer"}, "Technology"},
	{[]string{"marketing", "sales", "brand"}, "Marketing & Sales"},
	{[]string{"women", "diversity"}, "Diversity & Inclusion"},
	{[]string{"finance", "fintech", "banking"}, "Finance"},
	{[]string{"real estate", "property"}, "Real Estate"},
	{[]string{"health", "wellness", "medical"}, "Health & Wellness"},
}

var newsCategoryRules = []categoryRule{
	{[]string{"invest", "funding", "acquisition", "merger"}, "Investment & Funding"},
	{[]string{"startup", "entrepreneur", "founder"}, "Startup & Entrepreneurship"},
	{[]string{"regulation", "law", "compliance", "policy"}, "Regulation & Policy"},
	{[]string{"technology", "ai", "software", "digital"}, "Technology"},
	{[]string{"market", "trend", "forecast", "growth"}, "Market Trends"},
	{[]string{"hiring", "workforce", "labor", "employment"}, "Workforce"},
}

// CategorizeEvent assigns exactly one category from the title and
// description text.
func CategorizeEvent(event models.MeetupEvent) string {
	return matchCategory(event.Title+" "+event.Description, eventCategoryRules, DefaultEventCategory)
}

// CategorizeArticle assigns exactly one category from the title and
// description text.
func CategorizeArticle(article models.NewsArticle) string {
	return matchCategory(article.Title+" "+article.Description, newsCategoryRules, DefaultNewsCategory)
}

func matchCategory(text string, rules []categoryRule, fallback string) string {
	text = strings.ToLower(text)
	for _, rule := range rules {
		for _, sub := range rule.Substrings {
			if strings.Contains(text, sub) {
				return rule.Category
			}
		}
	}
	return fallback
}

// GroupEvents buckets events by their assigned category, preserving
// input order inside each bucket.
func GroupEvents(events []models.MeetupEvent) map[string][]models.MeetupEvent {
	grouped := make(map[string][]models.MeetupEvent)
	for _, event := range events {
		grouped[event.Category] = append(grouped[event.Category], event)
	}
	return grouped
}

// GroupArticles buckets articles by their assigned category, preserving
// input order inside each bucket.
func GroupArticles(articles []models.NewsArticle) map[string][]models.NewsArticle {
	grouped := make(map[string][]models.NewsArticle)
	for _, article := range articles {
		grouped[article.Category] = append(grouped[article.Category], article)
	}
	return grouped
}
