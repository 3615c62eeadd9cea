package models

// User represents an entry in the user directory.
// It maps to the `users` table in SQLite. The directory is loaded once at
// process start and is immutable at runtime.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}
