package repositories

import (
	"context"
	"errors"
	"time"

	"portfolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TickerInfoRepository interface {
	Get(ctx context.Context, ticker string) (*models.TickerInfo, error)
	Upsert(ctx context.Context, ticker, name string, instrumentType models.InstrumentType) error
	ListAll(ctx context.Context) ([]models.TickerInfo, error)
	ListUpdatedBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}

type tickerInfoRepo struct {
	db *pgxpool.Pool
}

func NewTickerInfoRepository(db *pgxpool.Pool) TickerInfoRepository {
	return &tickerInfoRepo{db: db}
}

// Get returns nil without error when the ticker has never been resolved.
func (r *tickerInfoRepo) Get(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	var info models.TickerInfo
	err := r.db.QueryRow(ctx,
		`SELECT stock_id, ticker, name, type, updated_at
		FROM portfolio_name
		WHERE ticker = $1`,
		ticker).Scan(&info.ID, &info.Ticker, &info.Name, &info.Type, &info.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert updates the entry for a ticker and inserts one when no row was
// affected, replacing the stored name, type and timestamp.
func (r *tickerInfoRepo) Upsert(ctx context.Context, ticker, name string, instrumentType models.InstrumentType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE portfolio_name SET name = $1, type = $2, updated_at = CURRENT_TIMESTAMP
		WHERE ticker = $3`,
		name, instrumentType, ticker)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO portfolio_name (ticker, name, type, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
		ticker, name, instrumentType)
	return err
}

func (r *tickerInfoRepo) ListAll(ctx context.Context) ([]models.TickerInfo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT stock_id, ticker, name, type, updated_at
		FROM portfolio_name
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []models.TickerInfo
	for rows.Next() {
		var info models.TickerInfo
		if err := rows.Scan(&info.ID, &info.Ticker, &info.Name, &info.Type, &info.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// ListUpdatedBefore returns the tickers whose metadata is older than the
// cutoff, candidates for the background refresh.
func (r *tickerInfoRepo) ListUpdatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ticker FROM portfolio_name WHERE updated_at < $1`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, err
		}
		tickers = append(tickers, ticker)
	}
	return tickers, rows.Err()
}
