package repositories

import (
	"context"
	"errors"

	"portfolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) (bool, error)
	Delete(ctx context.Context, userID int) (bool, error)
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, username, password, avatar, created_at FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Username, &u.Password, &u.Avatar, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) GetByID(ctx context.Context, userID int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT user_id, username, password, avatar, created_at FROM users WHERE user_id = $1`,
		userID).Scan(&u.UserID, &u.Username, &u.Password, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT user_id, username, password, avatar, created_at FROM users WHERE username = $1`,
		username).Scan(&u.UserID, &u.Username, &u.Password, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, password, avatar, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING user_id, created_at`,
		u.Username, u.Password, u.Avatar,
	).Scan(&u.UserID, &u.CreatedAt)
}

func (r *userRepo) Update(ctx context.Context, u *models.User) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET username = $1, password = $2, avatar = $3 WHERE user_id = $4`,
		u.Username, u.Password, u.Avatar, u.UserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) Delete(ctx context.Context, userID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
