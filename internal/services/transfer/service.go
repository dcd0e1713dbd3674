package transfer

import (
	"context"
	"strings"
	"time"

	apperrors "moneytransfer/internal/errors"
	"moneytransfer/internal/models"
	"moneytransfer/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	accounts repositories.AccountRepository
	ledger   repositories.LedgerRepository
	logger   *zap.Logger
	metrics  MetricsCollector
}

// NewService creates a new transfer service
func NewService(
	accounts repositories.AccountRepository,
	ledger repositories.LedgerRepository,
	logger *zap.Logger,
	metrics MetricsCollector,
) Service {
	if accounts == nil {
		panic("accounts is required")
	}
	if ledger == nil {
		panic("ledger is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		accounts: accounts,
		ledger:   ledger,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *service) Transfer(ctx context.Context, req Request) error {
	start := time.Now()
	stage := StateValidating

	err := s.transfer(ctx, req, &stage)

	s.finish(ctx, req, stage, err, time.Since(start))
	if err != nil {
		return apperrors.Classify(err)
	}
	return nil
}

// transfer runs validate -> debit -> credit -> commit. stage is updated as
// each step starts so a failure can be attributed to it.
func (s *service) transfer(ctx context.Context, req Request, stage *State) error {
	if models.ExceedsMoneyScale(req.Amount) {
		return apperrors.ErrMoneyTooManyDecimalPlaces
	}
	// No balance can hold it, so it would overflow on credit.
	if models.ExceedsMoneyPrecision(req.Amount) {
		return apperrors.ErrMoneyOverflow
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	if err := s.requireAccount(ctx, req.SourceAccount); err != nil {
		return err
	}
	if err := s.requireAccount(ctx, req.DestinationAccount); err != nil {
		return err
	}

	// Once the transaction has started it must end in commit or rollback,
	// whatever happens to the caller.
	txCtx := context.WithoutCancel(ctx)

	return s.ledger.ExecuteInTransaction(txCtx, func(tx repositories.LedgerRepository) error {
		*stage = StateDebiting
		rows, err := tx.Debit(txCtx, req.SourceAccount, req.Currency, req.Amount)
		if err != nil {
			return err
		}
		// A missing balance row and a short balance look the same here.
		if rows == 0 {
			return apperrors.ErrInsufficientAccountBalance
		}

		*stage = StateCrediting
		return tx.Credit(txCtx, req.DestinationAccount, req.Currency, req.Amount)
	})
}

func (s *service) requireAccount(ctx context.Context, accountID string) error {
	exists, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrInvalidAccount
	}
	return nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.SourceAccount) == "" ||
		strings.TrimSpace(req.DestinationAccount) == "" ||
		strings.TrimSpace(req.Currency) == "" {
		return apperrors.ErrBadRequest
	}
	if !req.Amount.IsPositive() {
		return apperrors.ErrBadRequest
	}
	return nil
}

func (s *service) finish(ctx context.Context, req Request, stage State, err error, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("transfer_id", uuid.NewString()),
		zap.String("source", req.SourceAccount),
		zap.String("destination", req.DestinationAccount),
		zap.String("currency", req.Currency),
		zap.String("amount", models.FormatAmount(req.Amount)),
		zap.Duration("elapsed", elapsed),
	}

	if err == nil {
		s.logger.Info("transfer committed", append(fields, zap.String("state", string(StateCommitted)))...)
		s.metrics.RecordTransfer(ctx, req.Currency, OutcomeOK, elapsed)
		return
	}

	domainErr := apperrors.Classify(err)
	fields = append(fields,
		zap.String("state", string(StateRolledBack)),
		zap.String("stage", string(stage)),
		zap.String("code", domainErr.Code),
	)
	if domainErr == apperrors.ErrInternal {
		s.logger.Error("transfer failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("transfer rejected", fields...)
	}
	s.metrics.RecordTransfer(ctx, req.Currency, domainErr.Code, elapsed)
}
