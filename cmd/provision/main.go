// Command provision creates the transfer tables and seeds accounts and balances.
//
//	provision -account alice -account bob -balance alice:USD:100 -balance bob:USD:50
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"moneytransfer/internal/config"
	applogger "moneytransfer/internal/logger"
	"moneytransfer/internal/models"
	"moneytransfer/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type balanceSeed struct {
	accountID string
	currency  string
	amount    decimal.Decimal
}

func parseBalance(v string) (balanceSeed, error) {
	parts := strings.SplitN(v, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return balanceSeed{}, fmt.Errorf("balance %q must be account:currency:amount", v)
	}
	amount, err := models.ParseAmount(parts[2])
	if err != nil {
		return balanceSeed{}, err
	}
	if models.ExceedsMoneyScale(amount) {
		return balanceSeed{}, fmt.Errorf("balance %q has more than %d decimal places", v, models.MoneyScale)
	}
	if models.ExceedsMoneyPrecision(amount) {
		return balanceSeed{}, fmt.Errorf("balance %q has more than %d integer digits", v, models.MoneyIntegerDigits)
	}
	return balanceSeed{accountID: parts[0], currency: parts[1], amount: amount}, nil
}

func main() {
	var accounts, balances listFlag
	flag.Var(&accounts, "account", "account id to create (repeatable)")
	flag.Var(&balances, "balance", "balance to set as account:currency:amount (repeatable)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	zl, err := applogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	seeds := make([]balanceSeed, 0, len(balances))
	for _, b := range balances {
		seed, err := parseBalance(b)
		if err != nil {
			zl.Fatal("invalid -balance", zap.Error(err))
		}
		seeds = append(seeds, seed)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := repositories.EnsureSchema(ctx, db); err != nil {
		zl.Fatal("schema", zap.Error(err))
	}

	for _, id := range accounts {
		if err := repositories.InsertAccount(ctx, db, id); err != nil {
			zl.Fatal("account", zap.Error(err))
		}
		zl.Info("account ready", zap.String("account_id", id))
	}

	for _, s := range seeds {
		if err := repositories.InsertAccount(ctx, db, s.accountID); err != nil {
			zl.Fatal("account", zap.Error(err))
		}
		if err := repositories.SetBalance(ctx, db, s.accountID, s.currency, s.amount); err != nil {
			zl.Fatal("balance", zap.Error(err))
		}
		zl.Info("balance set",
			zap.String("account_id", s.accountID),
			zap.String("currency", s.currency),
			zap.String("balance", s.amount.String()))
	}
}
