// Command devtoken mints a bearer token for local testing against the API.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"room-booking/internal/domain/user"
	"room-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		secret   string
		roleName string
		userID   string
		ttl      time.Duration
	)

	flagSet := pflag.NewFlagSet("devtoken", pflag.ContinueOnError)
	flagSet.StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to $JWT_SECRET)")
	flagSet.StringVarP(&roleName, "role", "r", user.RoleUser.String(), "role: admin, manager or user")
	flagSet.StringVarP(&userID, "user", "u", "", "user id (random when empty)")
	flagSet.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if secret == "" {
		return errors.New("--secret or JWT_SECRET is required")
	}

	role, err := user.NewRole(roleName)
	if err != nil {
		return fmt.Errorf("%w: %q", err, roleName)
	}

	id := uuid.New()
	if userID != "" {
		if id, err = uuid.Parse(userID); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}

	token, err := jwt.NewService(secret, ttl).GenerateToken(id, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "user %s (%s)\n", id, role)
	fmt.Println(token)
	return nil
}
