package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "moneytransfer/internal/errors"
	"moneytransfer/internal/handlers"
	"moneytransfer/internal/repositories"
	"moneytransfer/internal/services/transfer"
	"moneytransfer/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Exists(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// MockLedger has no expectations; any call fails the test.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Debit(ctx context.Context, accountID, currency string, amount decimal.Decimal) (int64, error) {
	args := m.Called(ctx, accountID, currency, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, accountID, currency string, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, currency, amount)
	return args.Error(0)
}

func (m *MockLedger) Balance(ctx context.Context, accountID, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedger) ExecuteInTransaction(ctx context.Context, fn func(repositories.LedgerRepository) error) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, req transfer.Request) error {
	args := m.Called(req)
	return args.Error(0)
}

func newTestApp(svc transfer.Service, deps Dependencies) *fiber.App {
	deps.Transfers = svc
	if deps.HealthChecks == nil {
		deps.HealthChecks = map[string]handlers.HealthCheck{}
	}
	app := NewApp()
	SetupRoutes(app, deps)
	return app
}

func postTransfer(t *testing.T, app *fiber.App, body string, header map[string]string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/transfer-money", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func errorCodeOf(t *testing.T, body string) string {
	t.Helper()

	var payload struct {
		ErrorCode string `json:"errorCode"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload.ErrorCode
}

const validBody = `{"sourceAccount":"alice","destinationAccount":"bob","amount":"30.00","currency":"USD"}`

func TestTransferMoney_Success(t *testing.T) {
	svc := new(MockTransferService)
	svc.On("Transfer", mock.MatchedBy(func(req transfer.Request) bool {
		return req.SourceAccount == "alice" &&
			req.DestinationAccount == "bob" &&
			req.Currency == "USD" &&
			req.Amount.Equal(decimal.RequireFromString("30"))
	})).Return(nil)

	status, body := postTransfer(t, newTestApp(svc, Dependencies{}), validBody, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body)
	svc.AssertExpectations(t)
}

func TestTransferMoney_KeepsAmountScale(t *testing.T) {
	svc := new(MockTransferService)
	svc.On("Transfer", mock.MatchedBy(func(req transfer.Request) bool {
		return req.Amount.Exponent() == -11
	})).Return(apperrors.ErrMoneyTooManyDecimalPlaces)

	body := `{"sourceAccount":"alice","destinationAccount":"bob","amount":"1.23456789012","currency":"USD"}`
	status, resp := postTransfer(t, newTestApp(svc, Dependencies{}), body, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperrors.CodeMoneyTooManyDecimalPlaces, errorCodeOf(t, resp))
}

func TestTransferMoney_OutOfRangeExponent(t *testing.T) {
	tests := []struct {
		amount   string
		wantCode string
	}{
		{amount: `"1e2000000000"`, wantCode: apperrors.CodeMoneyOverflow},
		{amount: `1e2000000000`, wantCode: apperrors.CodeMoneyOverflow},
		{amount: `"1e-2000000000"`, wantCode: apperrors.CodeMoneyTooManyDecimalPlaces},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			accounts := new(MockAccounts)
			svc := transfer.NewService(accounts, new(MockLedger), nil, nil)

			body := `{"sourceAccount":"alice","destinationAccount":"bob","amount":` + tt.amount + `,"currency":"USD"}`
			start := time.Now()
			status, resp := postTransfer(t, newTestApp(svc, Dependencies{}), body, nil)

			assert.Less(t, time.Since(start), time.Second)
			assert.Equal(t, response.StatusFor(tt.wantCode), status)
			assert.Equal(t, tt.wantCode, errorCodeOf(t, resp))
			accounts.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		})
	}
}

func TestTransferMoney_MalformedRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `transfer please`},
		{name: "missing amount", body: `{"sourceAccount":"a","destinationAccount":"b","currency":"USD"}`},
		{name: "missing source", body: `{"destinationAccount":"b","amount":"1","currency":"USD"}`},
		{name: "missing currency", body: `{"sourceAccount":"a","destinationAccount":"b","amount":"1"}`},
		{name: "unparsable amount", body: `{"sourceAccount":"a","destinationAccount":"b","amount":"ten","currency":"USD"}`},
		{name: "wrong type", body: `{"sourceAccount":1,"destinationAccount":"b","amount":"1","currency":"USD"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTransferService)

			status, body := postTransfer(t, newTestApp(svc, Dependencies{}), tt.body, nil)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, apperrors.CodeBadRequest, errorCodeOf(t, body))
			svc.AssertNotCalled(t, "Transfer", mock.Anything)
		})
	}
}

func TestTransferMoney_AcceptsNumericAmount(t *testing.T) {
	svc := new(MockTransferService)
	svc.On("Transfer", mock.Anything).Return(nil)

	body := `{"sourceAccount":"a","destinationAccount":"b","amount":12.5,"currency":"USD"}`
	status, _ := postTransfer(t, newTestApp(svc, Dependencies{}), body, nil)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestTransferMoney_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{apperrors.ErrInvalidAccount, fiber.StatusBadRequest, apperrors.CodeInvalidAccount},
		{apperrors.ErrMoneyTooManyDecimalPlaces, fiber.StatusBadRequest, apperrors.CodeMoneyTooManyDecimalPlaces},
		{apperrors.ErrInsufficientAccountBalance, fiber.StatusUnprocessableEntity, apperrors.CodeInsufficientAccountBalance},
		{apperrors.ErrMoneyOverflow, fiber.StatusUnprocessableEntity, apperrors.CodeMoneyOverflow},
		{apperrors.ErrInternal, fiber.StatusInternalServerError, apperrors.CodeInternal},
		{errors.New("pq: connection reset"), fiber.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			svc := new(MockTransferService)
			svc.On("Transfer", mock.Anything).Return(tt.err)

			status, body := postTransfer(t, newTestApp(svc, Dependencies{}), validBody, nil)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, errorCodeOf(t, body))
			assert.NotContains(t, body, "pq:")
		})
	}
}

func TestTransferMoney_JWTGuard(t *testing.T) {
	svc := new(MockTransferService)
	svc.On("Transfer", mock.Anything).Return(nil)
	app := newTestApp(svc, Dependencies{JWTSecret: "s3cret"})

	status, body := postTransfer(t, app, validBody, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCodeOf(t, body))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	status, _ = postTransfer(t, app, validBody, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestTransferMoney_RateLimit(t *testing.T) {
	svc := new(MockTransferService)
	svc.On("Transfer", mock.Anything).Return(nil)
	app := newTestApp(svc, Dependencies{RateLimitMax: 2, RateLimitWindow: time.Minute})

	for i := 0; i < 2; i++ {
		status, _ := postTransfer(t, app, validBody, nil)
		assert.Equal(t, fiber.StatusOK, status)
	}

	status, body := postTransfer(t, app, validBody, nil)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCodeOf(t, body))
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(new(MockTransferService), Dependencies{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCodeOf(t, string(raw)))
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name       string
		checks     map[string]handlers.HealthCheck
		wantStatus int
		wantRedis  string
	}{
		{
			name:       "all up",
			checks:     map[string]handlers.HealthCheck{"database": ok, "redis": ok},
			wantStatus: fiber.StatusOK,
			wantRedis:  "connected",
		},
		{
			name:       "redis down",
			checks:     map[string]handlers.HealthCheck{"database": ok, "redis": down},
			wantStatus: fiber.StatusServiceUnavailable,
			wantRedis:  "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(new(MockTransferService), Dependencies{HealthChecks: tt.checks})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var payload struct {
				Status   string            `json:"status"`
				Services map[string]string `json:"services"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "connected", payload.Services["database"])
			assert.Equal(t, tt.wantRedis, payload.Services["redis"])
		})
	}
}
