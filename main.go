package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/config"
	"github.com/openshelf/circulation/internal/database"
	"github.com/openshelf/circulation/internal/database/users"
	"github.com/openshelf/circulation/internal/entities"
	"github.com/openshelf/circulation/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]

	switch command {
	case "create-admin":
		if err := runCreateAdmin(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// readPassword reads a password from the terminal with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// runCreateAdmin bootstraps the first administrator account.
func runCreateAdmin() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Admin username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password, err := readPassword("Admin password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	usersRepo := users.NewRepository(db.DB)
	authService := auth.NewService(usersRepo, cfg.Auth.BcryptCost)

	user, err := authService.CreateUser(username, password, entities.UserRoleAdmin)
	if err != nil {
		return err
	}

	fmt.Printf("Created admin account %q (id %d)\n", user.Username, user.ID)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve         Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  create-admin  Create the first administrator account\n")
	fmt.Fprintf(os.Stderr, "\nSeeding sample data: go run ./cmd/seed\n")
}
