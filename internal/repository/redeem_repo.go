package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// RedeemCodeRepository handles database operations for reward codes
type RedeemCodeRepository struct {
	db database.DBTX
}

// NewRedeemCodeRepository creates a new redeem code repository
func NewRedeemCodeRepository(db database.DBTX) *RedeemCodeRepository {
	return &RedeemCodeRepository{db: db}
}

// Create inserts a new reward code
func (r *RedeemCodeRepository) Create(c *models.RedeemCode) error {
	query := "INSERT INTO redeem_codes (code, points_threshold) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, c.Code, c.PointsThreshold)
	if err != nil {
		return fmt.Errorf("failed to create redeem code: %w", err)
	}
	c.ID = id
	return nil
}

// GetByID retrieves a reward code, nil when absent
func (r *RedeemCodeRepository) GetByID(id int64) (*models.RedeemCode, error) {
	query := "SELECT id, code, points_threshold, used, used_at FROM redeem_codes WHERE id = ?"
	c := &models.RedeemCode{}
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.Code, &c.PointsThreshold, &c.Used, &c.UsedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get redeem code: %w", err)
	}
	return c, nil
}

// MarkUsed stamps a code as used. Codes already used keep their original
// timestamp, so redeeming twice is harmless.
func (r *RedeemCodeRepository) MarkUsed(id int64, at time.Time) error {
	query := `
		UPDATE redeem_codes
		SET used = ` + r.db.GetDialect().BoolValue(true) + `, used_at = ?
		WHERE id = ? AND used = ` + r.db.GetDialect().BoolValue(false)
	_, err := r.db.Exec(query, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark redeem code used: %w", err)
	}
	return nil
}
