package repository

import (
	"context"
	"testing"

	"bookManagement/internal/db"
	"bookManagement/models"
)

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// Create
	u, err := repo.Create(ctx, "alice", "$2a$04$hash", models.RoleUser)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" || u.Role != models.RoleUser {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// Duplicate username rejected
	if _, err := repo.Create(ctx, "alice", "$2a$04$other", models.RoleUser); err == nil {
		t.Fatalf("expected unique constraint violation")
	}

	// GetByUsername
	g, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g == nil || g.ID != u.ID || g.PasswordHash != "$2a$04$hash" {
		t.Fatalf("get by username: %v %+v", err, g)
	}

	// Unknown username -> nil, nil
	missing, err := repo.GetByUsername(ctx, "ghost")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown user: %v %+v", err, missing)
	}

	// Upsert replaces hash and role
	if err := repo.Upsert(ctx, "alice", "$2a$04$new", models.RoleAdmin); err != nil {
		t.Fatalf("upsert existing: %v", err)
	}
	g2, _ := repo.GetByUsername(ctx, "alice")
	if g2.PasswordHash != "$2a$04$new" || g2.Role != models.RoleAdmin {
		t.Fatalf("upsert did not replace: %+v", g2)
	}

	// Upsert inserts new
	if err := repo.Upsert(ctx, "bob", "$2a$04$bob", models.RoleUser); err != nil {
		t.Fatalf("upsert new: %v", err)
	}

	// LoadAll
	all, err := repo.LoadAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("load all: %v len=%d", err, len(all))
	}
	if all[0].Username != "alice" || all[1].Username != "bob" {
		t.Fatalf("unexpected order: %+v", all)
	}

	// Delete
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := repo.GetByUsername(ctx, "alice")
	if err != nil || gone != nil {
		t.Fatalf("expected deleted user to be gone: %v %+v", err, gone)
	}
}
