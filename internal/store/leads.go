// internal/store/leads.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// LeadFilter narrows a lead query. Zero values mean no constraint
// beyond the brief ID.
type LeadFilter struct {
	BriefID  string
	LeadType string
	MinScore int
}

// LeadStore persists the lead records of a brief so they stay
// queryable past the brief's own TTL.
type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// SaveLeads writes all leads of a brief in one transaction.
func (s *LeadStore) SaveLeads(ctx context.Context, briefID string, leads []models.LeadRecord) error {
	if len(leads) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreUnavailableError("postgres", err)
	}
	defer tx.Rollback()

	const insert = `
		INSERT INTO leads (brief_id, title, rating, reviews_count, address,
		       category, lead_score, lead_type, potential_value, contact_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now().UTC()
	for _, lead := range leads {
		if _, err := tx.ExecContext(ctx, insert,
			briefID, lead.Title, lead.Rating, lead.ReviewsCount, lead.Address,
			lead.Category, lead.LeadScore, lead.LeadType, lead.PotentialValue,
			lead.ContactReason, now,
		); err != nil {
			return errors.NewStoreUnavailableError("postgres", fmt.Errorf("insert lead %q: %w", lead.Title, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreUnavailableError("postgres", err)
	}
	return nil
}

// FilterLeads returns the stored leads of a brief matching the filter,
// highest score first.
func (s *LeadStore) FilterLeads(ctx context.Context, filter LeadFilter) ([]models.LeadRecord, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT title, rating, reviews_count, address, category,
		       lead_score, lead_type, potential_value, contact_reason
		FROM leads
		WHERE brief_id = $1`)
	args := []interface{}{filter.BriefID}

	if filter.LeadType != "" {
		args = append(args, filter.LeadType)
		query.WriteString(fmt.Sprintf(" AND lead_type = $%d", len(args)))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		query.WriteString(fmt.Sprintf(" AND lead_score >= $%d", len(args)))
	}
	query.WriteString(" ORDER BY lead_score DESC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("postgres", err)
	}
	defer rows.Close()

	var leads []models.LeadRecord
	for rows.Next() {
		var lead models.LeadRecord
		if err := rows.Scan(
			&lead.Title, &lead.Rating, &lead.ReviewsCount, &lead.Address,
			&lead.Category, &lead.LeadScore, &lead.LeadType,
			&lead.PotentialValue, &lead.ContactReason,
		); err != nil {
			return nil, errors.NewStoreUnavailableError("postgres", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("postgres", err)
	}
	return leads, nil
}
