// internal/normalize/keywords.go
package normalize

import "strings"

// MaxKeywords bounds downstream query fan-out.
const MaxKeywords = 3

// industryKeywords maps a lowercased industry label to the search terms
// used against news and event providers.
var industryKeywords = map[string][]string{
	"restaurant & food service":   {"food industry", "hospitality"},
	"technology & software":       {"tech", "software development"},
	"healthcare & medical":        {"healthcare", "medical professionals"},
	"retail & e-commerce":         {"retail", "ecommerce"},
	"real estate":                 {"real estate", "property investment"},
	"finance & banking":           {"fintech", "finance professionals"},
	"marketing & advertising":     {"marketing", "digital advertising"},
	"construction & contracting":  {"construction", "contractors"},
	"education & training":        {"education", "professional training"},
	"legal services":              {"legal", "law professionals"},
	"fitness & wellness":          {"fitness industry", "wellness"},
	"beauty & personal care":      {"beauty industry", "salon owners"},
	"automotive":                  {"automotive", "car dealers"},
	"manufacturing":               {"manufacturing", "industrial"},
	"logistics & transportation":  {"logistics", "supply chain"},
}

// genericKeywords is the fallback when an industry is unmapped.
var genericKeywords = []string{"business", "networking", "entrepreneurship"}

// goalKeywordRules maps substrings of a free-text goal to one extra
// search term. Order matters: the first matching rule contributes the
// single goal-derived keyword.
var goalKeywordRules = []struct {
	Substring string
	Keyword   string
}{
	{"invest", "investment"},
	{"fund", "funding"},
	{"network", "networking"},
	{"partner", "partnership"},
	{"grow", "business growth"},
	{"scale", "business growth"},
	{"hire", "recruiting"},
	{"market", "marketing"},
}

// DeriveKeywords builds the ordered set of search keywords for a request.
// Priority: the explicit networking keyword, then up to two
// industry-mapped terms, then at most one goal-derived term. Lowercase,
// deduplicated, capped at MaxKeywords.
func DeriveKeywords(industry, networkingKeyword, customGoal string) []string {
	var keywords []string
	seen := make(map[string]bool)

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] || len(keywords) >= MaxKeywords {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	if len(strings.TrimSpace(networkingKeyword)) > 2 {
		add(networkingKeyword)
	}

	mapped, ok := industryKeywords[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		mapped = genericKeywords
	}
	for i, kw := range mapped {
		if i >= 2 {
			break
		}
		add(kw)
	}

	goal := strings.ToLower(customGoal)
	if goal != "" {
		for _, rule := range goalKeywordRules {
			if strings.Contains(goal, rule.Substring) {
				add(rule.Keyword)
				break
			}
		}
	}

	return keywords
}

// IndustryKeywords returns the mapped search terms for an industry, or
// the generic fallback list. Used by the news scorer as well as query
// building.
func IndustryKeywords(industry string) []string {
	if mapped, ok := industryKeywords[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return mapped
	}
	return genericKeywords
}
