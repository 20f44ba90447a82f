// internal/models/brief.go
package models

import "time"

// CompetitorRecord is one local business returned by the places provider
// or synthesized by the fallback generator.
type CompetitorRecord struct {
	Title         string  `json:"title"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int     `json:"reviewsCount"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone,omitempty"`
	Website       string  `json:"website,omitempty"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	PriceLevel    string  `json:"priceLevel,omitempty"`
	GoogleMapsURL string  `json:"googleMapsUrl,omitempty"`
}

// LeadRecord is a competitor reinterpreted as a prospective partner.
type LeadRecord struct {
	CompetitorRecord
	LeadScore      int    `json:"leadScore"`
	LeadType       string `json:"leadType"`
	PotentialValue int    `json:"potentialValue"`
	ContactReason  string `json:"contactReason"`
}

// MarketAnalysis summarizes a competitor set. It is derived, never stored
// independently of the set it describes.
type MarketAnalysis struct {
	TotalBusinesses int     `json:"totalBusinesses"`
	AverageRating   float64 `json:"averageRating"`
	Saturation      string  `json:"saturation"` // Low, Medium, High
}

// NewsArticle is a scored and categorized industry news item.
type NewsArticle struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	SourceURL      string    `json:"sourceUrl"`
	Published      time.Time `json:"published"`
	RelevanceScore int       `json:"relevanceScore"`
	Category       string    `json:"category"`
	Sentiment      string    `json:"sentiment"` // positive, neutral, negative
	KeyInsights    []string  `json:"keyInsights,omitempty"`
}

// Event type values.
const (
	EventInPerson = "IN_PERSON"
	EventOnline   = "ONLINE"
)

// MeetupEvent is a scored networking event.
type MeetupEvent struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	Type              string    `json:"type"` // IN_PERSON or ONLINE
	Address           string    `json:"address,omitempty"`
	URL               string    `json:"url,omitempty"`
	Organizer         string    `json:"organizer"`
	MaxAttendees      int       `json:"maxAttendees"`
	ActualAttendees   int       `json:"actualAttendees"`
	RelevanceScore    int       `json:"relevanceScore"`
	Category          string    `json:"category"`
	NetworkingValue   int       `json:"networkingValue"`
	PersonalizedReason string   `json:"personalizedReason,omitempty"`
	ActionableSteps   []string  `json:"actionableSteps,omitempty"`
}

// BusinessData is the competitor/lead section of a brief.
type BusinessData struct {
	Competitors      []CompetitorRecord `json:"competitors"`
	Leads            []LeadRecord       `json:"leads"`
	MarketAnalysis   MarketAnalysis     `json:"marketAnalysis"`
	UsingFallbackData bool              `json:"usingFallbackData"`
}

// NewsData is the news section of a brief.
type NewsData struct {
	Articles         []NewsArticle            `json:"articles"`
	Categorized      map[string][]NewsArticle `json:"categorized"`
	TotalFound       int                      `json:"totalFound"`
	UsingFallbackData bool                    `json:"usingFallbackData"`
}

// MeetupData is the events section of a brief. Nil when the request did
// not ask for networking events.
type MeetupData struct {
	Events           []MeetupEvent            `json:"events"`
	Categorized      map[string][]MeetupEvent `json:"categorized"`
	TotalFound       int                      `json:"totalFound"`
	SearchSummary    string                   `json:"searchSummary"`
	UsingFallbackData bool                    `json:"usingFallbackData"`
}

// BriefMetadata echoes the request parameters a brief was built from.
type BriefMetadata struct {
	Industry   string `json:"industry"`
	Location   string `json:"location"`
	WebsiteURL string `json:"websiteUrl"`
	CustomGoal string `json:"customGoal,omitempty"`
}

// Brief is the persisted composite output of one generation request.
// Created once, never updated.
type Brief struct {
	ID           string        `json:"id"`
	BusinessName string        `json:"businessName"`
	Content      string        `json:"content"`
	BusinessData BusinessData  `json:"businessData"`
	NewsData     NewsData      `json:"newsData"`
	MeetupData   *MeetupData   `json:"meetupData,omitempty"`
	Metadata     BriefMetadata `json:"metadata"`
	CreatedAt    time.Time     `json:"createdAt"`
}
