package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dindin-app/dindin/internal/config"
	"github.com/dindin-app/dindin/internal/ledger"
	"github.com/dindin-app/dindin/internal/service"
	"github.com/dindin-app/dindin/internal/storage"
)

// initStorage opens the database for the configured profile and runs
// migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	session := config.NewSession(viper.GetString("profile"))

	store, err := storage.NewSQLiteStorage(dbPath, session.Profile)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initLedger opens storage and wraps it in the ledger service. The caller
// closes the returned storage.
func initLedger(ctx context.Context) (*ledger.Service, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(store), store, nil
}

// parseAmount accepts both "1234.56" and Brazilian "1234,56" input.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// parseDate accepts "DD/MM/YYYY" and "YYYY-MM-DD". Empty means today.
func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use DD/MM/YYYY)", s)
}
