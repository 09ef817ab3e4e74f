package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/klasurapp/backend/internal/config"
	"github.com/klasurapp/backend/internal/database"
	"github.com/klasurapp/backend/internal/logger"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/klasurapp/backend/internal/service"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	moduleRepo := repository.NewModuleRepository(pool)
	taskRepo := repository.NewTaskRepository(pool, moduleRepo)
	userRepo := repository.NewUserRepository(pool)
	accountRepo := repository.NewAccountRepository(pool, userRepo, taskRepo)
	accountService := service.NewAccountService(accountRepo, taskRepo, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Account ===")

	username := promptRequired(reader, "Enter Username: ")
	firstName := promptRequired(reader, "Enter First Name: ")
	lastName := promptRequired(reader, "Enter Last Name: ")
	email := promptRequired(reader, "Enter Email: ")

	fmt.Print("Enter Role (default DOZENT): ")
	role, _ := reader.ReadString('\n')
	role = strings.TrimSpace(role)
	if role == "" {
		role = "DOZENT"
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	req := model.CreateAccountRequest{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Role:         role,
	}

	account, err := accountService.Create(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	fmt.Printf("\nSuccess! Account '%s' (%s) created with ID: %d\n", account.Username, account.User.Email, account.ID)
}

func promptRequired(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	value = strings.TrimSpace(value)
	if value == "" {
		fmt.Println("Error: value is required")
		os.Exit(1)
	}
	return value
}
