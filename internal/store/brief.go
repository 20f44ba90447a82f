// internal/store/brief.go
package store

import (
	"context"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// DefaultBriefTTL is how long a stored brief stays retrievable.
const DefaultBriefTTL = 7 * 24 * time.Hour

// BriefStore is the persistence contract for generated briefs. Get on
// an unknown or expired ID returns a BRIEF_NOT_FOUND error.
type BriefStore interface {
	Put(ctx context.Context, brief *models.Brief) error
	Get(ctx context.Context, id string) (*models.Brief, error)
}
