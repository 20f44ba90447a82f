// internal/sources/places/analysis.go
package places

import (
	"fmt"
	"math"
	"sort"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Saturation thresholds: competitor counts below Low stay Low, below
// High stay Medium.
const (
	saturationLowBelow  = 5
	saturationHighFrom  = 15
)

// BuildMarketAnalysis derives the market summary from a competitor set.
// Always derivable, never cached apart from the set it describes.
func BuildMarketAnalysis(competitors []models.CompetitorRecord) models.MarketAnalysis {
	analysis := models.MarketAnalysis{
		TotalBusinesses: len(competitors),
		Saturation:      "Low",
	}

	if len(competitors) == 0 {
		return analysis
	}

	sum := 0.0
	rated := 0
	for _, c := range competitors {
		if c.Rating > 0 {
			sum += c.Rating
			rated++
		}
	}
	if rated > 0 {
		analysis.AverageRating = math.Round(sum/float64(rated)*10) / 10
	}

	switch {
	case len(competitors) >= saturationHighFrom:
		analysis.Saturation = "High"
	case len(competitors) >= saturationLowBelow:
		analysis.Saturation = "Medium"
	}

	return analysis
}

// leadTypeFor classifies a business as a lead by its standing.
func leadTypeFor(c models.CompetitorRecord) string {
	switch {
	case c.Rating >= 4.5 && c.ReviewsCount >= 100:
		return "Established Player"
	case c.Rating >= 4.0:
		return "Potential Partner"
	case c.ReviewsCount < 30:
		return "Emerging Business"
	default:
		return "Service Provider"
	}
}

// DeriveLeads reinterprets the competitor pool as prospective partners,
// best prospects first. Scores are deterministic functions of rating and
// review volume.
func DeriveLeads(competitors []models.CompetitorRecord, industry string) []models.LeadRecord {
	leads := make([]models.LeadRecord, 0, len(competitors))
	for _, c := range competitors {
		score := leadScore(c)
		leads = append(leads, models.LeadRecord{
			CompetitorRecord: c,
			LeadScore:        score,
			LeadType:         leadTypeFor(c),
			PotentialValue:   potentialValue(c),
			ContactReason:    contactReason(c, industry),
		})
	}
	SortLeads(leads)
	return leads
}

// SortLeads orders by lead score descending; rating then review volume
// break ties.
func SortLeads(leads []models.LeadRecord) {
	sort.SliceStable(leads, func(i, j int) bool {
		if leads[i].LeadScore != leads[j].LeadScore {
			return leads[i].LeadScore > leads[j].LeadScore
		}
		if leads[i].Rating != leads[j].Rating {
			return leads[i].Rating > leads[j].Rating
		}
		return leads[i].ReviewsCount > leads[j].ReviewsCount
	})
}

func leadScore(c models.CompetitorRecord) int {
	// Rating carries up to 60 points, review volume up to 40.
	score := int(c.Rating / 5.0 * 60)

	reviews := c.ReviewsCount
	if reviews > 200 {
		reviews = 200
	}
	score += reviews / 5

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func potentialValue(c models.CompetitorRecord) int {
	base := 2500
	base += c.ReviewsCount * 25
	if c.Rating >= 4.5 {
		base += 2000
	}
	return base
}

func contactReason(c models.CompetitorRecord, industry string) string {
	switch leadTypeFor(c) {
	case "Established Player":
		return fmt.Sprintf("Market leader in local %s; candidate for referral exchange", industry)
	case "Potential Partner":
		return fmt.Sprintf("Well-rated %s business open to cross-promotion", industry)
	case "Emerging Business":
		return "Early-stage operation likely looking for partnerships"
	default:
		return fmt.Sprintf("Active %s provider worth a discovery call", industry)
	}
}
