// Command useradd provisions entries in the user directory. The server never
// mutates the directory at runtime, so accounts are managed with this tool and
// picked up on the next server start.
package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"bookManagement/internal/db"
	"bookManagement/models"
	"bookManagement/repository"
)

func main() {
	dbPath := flag.String("db", "users.db", "path to the user directory database")
	username := flag.String("username", "", "username to create or update")
	password := flag.String("password", "", "password to hash and store")
	role := flag.String("role", "User", "role: User or Admin")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	r, ok := models.ParseRole(*role)
	if !ok {
		log.Fatalf("unknown role %q (want User or Admin)", *role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	d, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer d.Close()

	users := repository.NewUserRepository(d)
	if err := users.Upsert(context.Background(), *username, string(hash), r); err != nil {
		log.Fatalf("store user: %v", err)
	}
	log.Printf("user %q stored with role %s in %s", *username, r, *dbPath)
}
