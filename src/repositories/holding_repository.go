package repositories

import (
	"context"
	"errors"

	"portfolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Holding, error)
	GetByUserAndTicker(ctx context.Context, userID int, ticker string) (*models.Holding, error)
	Create(ctx context.Context, h *models.Holding) error
	Update(ctx context.Context, h *models.Holding) (bool, error)
	UpdatePosition(ctx context.Context, userID, recordID int, quantity, buyinPrice float64) (bool, error)
	UpdateQuantity(ctx context.Context, userID, recordID int, quantity float64) (bool, error)
	Delete(ctx context.Context, userID, recordID int) (bool, error)
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT record_id, user_id, type, ticker, name, buyin_price, quantity, created_at, updated_at
		FROM holding
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.RecordID, &h.UserID, &h.Type, &h.Ticker, &h.Name, &h.BuyinPrice, &h.Quantity, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetByUserAndTicker returns nil without error when the user holds no
// position in the ticker.
func (r *holdingRepo) GetByUserAndTicker(ctx context.Context, userID int, ticker string) (*models.Holding, error) {
	var h models.Holding
	err := r.db.QueryRow(ctx,
		`SELECT record_id, user_id, type, ticker, name, buyin_price, quantity, created_at, updated_at
		FROM holding
		WHERE user_id = $1 AND ticker = $2`,
		userID, ticker).Scan(&h.RecordID, &h.UserID, &h.Type, &h.Ticker, &h.Name, &h.BuyinPrice, &h.Quantity, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO holding (user_id, type, ticker, name, buyin_price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING record_id, created_at, updated_at`,
		h.UserID, h.Type, h.Ticker, h.Name, h.BuyinPrice, h.Quantity,
	).Scan(&h.RecordID, &h.CreatedAt, &h.UpdatedAt)
}

// Update replaces every mutable field of the record, reporting whether a
// row was affected.
func (r *holdingRepo) Update(ctx context.Context, h *models.Holding) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE holding SET type = $1, ticker = $2, name = $3, buyin_price = $4, quantity = $5, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $6 AND record_id = $7`,
		h.Type, h.Ticker, h.Name, h.BuyinPrice, h.Quantity, h.UserID, h.RecordID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePosition sets quantity and average buy-in price together, used by buys.
func (r *holdingRepo) UpdatePosition(ctx context.Context, userID, recordID int, quantity, buyinPrice float64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE holding SET quantity = $1, buyin_price = $2, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $3 AND record_id = $4`,
		quantity, buyinPrice, userID, recordID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateQuantity sets quantity only; sells leave the average cost untouched.
func (r *holdingRepo) UpdateQuantity(ctx context.Context, userID, recordID int, quantity float64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE holding SET quantity = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2 AND record_id = $3`,
		quantity, userID, recordID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *holdingRepo) Delete(ctx context.Context, userID, recordID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM holding WHERE user_id = $1 AND record_id = $2`,
		userID, recordID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
