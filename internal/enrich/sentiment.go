// internal/enrich/sentiment.go
package enrich

import (
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

var positiveWords = []string{
	"growth", "success", "profit", "surge", "boom",
	"record", "expansion", "opportunity", "breakthrough", "win",
}

var negativeWords = []string{
	"decline", "loss", "crisis", "layoff", "bankruptcy",
	"drop", "slump", "shortage", "lawsuit", "fraud",
}

// ArticleSentiment classifies an article by counting fixed positive and
// negative word occurrences across title and description. Majority wins;
// ties are neutral.
func ArticleSentiment(article models.NewsArticle) string {
	text := strings.ToLower(article.Title + " " + article.Description)

	positive := 0
	for _, w := range positiveWords {
		positive += strings.Count(text, w)
	}
	negative := 0
	for _, w := range negativeWords {
		negative += strings.Count(text, w)
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
