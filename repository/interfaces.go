package repository

import (
	"context"

	"bookManagement/models"
)

// UserRepositoryI defines operations on user-directory entries.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
	Upsert(ctx context.Context, username, passwordHash string, role models.Role) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	LoadAll(ctx context.Context) ([]models.User, error)
}

// BookRepositoryI defines operations on a single scope's book records.
type BookRepositoryI interface {
	List(ctx context.Context) ([]models.Book, error)
	Append(ctx context.Context, book models.Book) error
	DeleteByName(ctx context.Context, name string) error
}
