package main

import (
	"fmt"
	"os"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/auth"
	"github.com/edgarsj/warehouse-cli/internal/cli"
	"github.com/edgarsj/warehouse-cli/internal/session"
	"github.com/edgarsj/warehouse-cli/internal/storage"
	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"
)

// Environment variables
var (
	storageDir = env.String("STORAGE_DIR", false,
		"storage", "Directory holding the product and user snapshot files")
	logLevel = env.String("LOG_LEVEL", false,
		"info", "Log output level [debug, info, warn, error]")
	displayTimezone = env.String("DISPLAY_TIMEZONE", false,
		"Europe/Riga", "Timezone used for displayed and persisted timestamps")
)

func main() {
	env.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "warehouse",
		Level: hclog.LevelFromString(*logLevel),
	})

	loc, err := time.LoadLocation(*displayTimezone)
	if err != nil {
		logger.Error("Unknown display timezone", "timezone", *displayTimezone, "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(*storageDir, loc, logger.Named("storage"))

	// A corrupted snapshot is fatal; running against a silently empty
	// warehouse would be worse than not running at all.
	warehouse, err := store.LoadProducts()
	if err != nil {
		logger.Error("Unable to load the product snapshot", "error", err)
		os.Exit(1)
	}

	users, err := store.LoadUsers()
	if err != nil {
		logger.Error("Unable to load the users file", "error", err)
		os.Exit(1)
	}

	auditOut, err := os.OpenFile(store.AuditLogPath(),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error("Unable to open the audit log", "error", err)
		os.Exit(1)
	}
	defer auditOut.Close()

	audit := hclog.New(&hclog.LoggerOptions{
		Name:   "audit",
		Level:  hclog.Info,
		Output: auditOut,
	})

	validation := cli.NewValidation()
	ask := cli.NewAsk(os.Stdin, os.Stdout, validation)
	display := cli.NewDisplay(os.Stdout, loc)

	var username string
	for {
		u, p, err := ask.Login()
		if err != nil {
			logger.Error("Login aborted", "error", err)
			os.Exit(1)
		}
		if auth.Verify(u, p, users) {
			username = u
			break
		}
		fmt.Println("Incorrect username or password!")
	}

	fmt.Printf("Welcome, %s!\n", username)
	audit.Info("logged into the database", "user", username)

	s := session.New(warehouse, store, ask, display, os.Stdout,
		logger.Named("session"), audit, username)
	if err := s.Run(); err != nil {
		logger.Error("Session ended with an error", "error", err)
		os.Exit(1)
	}
}
