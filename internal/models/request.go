// internal/models/request.go
package models

import "strings"

// SearchRequest is the immutable input to a brief generation run.
type SearchRequest struct {
	BusinessName      string `json:"businessName"`
	WebsiteURL        string `json:"websiteUrl"`
	Industry          string `json:"industry"`
	Location          string `json:"location"`
	CustomGoal        string `json:"customGoal,omitempty"`
	NetworkingKeyword string `json:"networkingKeyword,omitempty"`
}

// MissingFields returns the required fields that are empty or blank.
func (r SearchRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.BusinessName) == "" {
		missing = append(missing, "businessName")
	}
	if strings.TrimSpace(r.WebsiteURL) == "" {
		missing = append(missing, "websiteUrl")
	}
	if strings.TrimSpace(r.Industry) == "" {
		missing = append(missing, "industry")
	}
	if strings.TrimSpace(r.Location) == "" {
		missing = append(missing, "location")
	}
	return missing
}

// LocationSpec is the normalized form of a free-text location. City and
// state are always usable; parsing falls back to defaults rather than
// failing.
type LocationSpec struct {
	City        string `json:"city"`
	State       string `json:"state"`
	CountryCode string `json:"countryCode"`
	Original    string `json:"original"`
}
