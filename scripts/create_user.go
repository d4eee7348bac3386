// Bootstraps a staff account directly against the database. Meant for the
// first admin user on a fresh install; day-to-day accounts go through the
// API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"oceanview/internal/database"
	"oceanview/internal/repository"
	"oceanview/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		dbPath   = flag.String("db", "./data/oceanview.db", "path to sqlite db")
		username = flag.String("username", "", "login name")
		password = flag.String("password", "", "password")
		fullName = flag.String("name", "", "display name")
		role     = flag.String("role", "admin", "user role")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		return fmt.Errorf("username and password are required")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := service.NewUserService(db, repository.NewMemorySessionRepository(time.Hour), &logger)
	user, err := users.Register(ctx, *username, *password, *fullName, *role)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	logger.Info().Int64("id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user created")
	return nil
}
