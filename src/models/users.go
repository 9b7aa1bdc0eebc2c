package models

import "time"

type User struct {
	UserID    int       `db:"user_id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Avatar    *string   `db:"avatar"`
	CreatedAt time.Time `db:"created_at"`
}
