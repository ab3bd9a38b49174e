package service_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/service"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(ctx context.Context, method, path string, body map[string]any, headers map[string]string) (map[string]any, error) {
	args := m.Called(ctx, method, path, body, headers)
	res, _ := args.Get(0).(map[string]any)
	return res, args.Error(1)
}

func signedSession() *auth.Authenticator {
	a := auth.New("alice", auth.WithClock(func() time.Time { return now }))
	a.SetToken("tok")
	return a
}

var signed = mock.MatchedBy(func(h map[string]string) bool {
	return h["token"] == "tok" &&
		h["timestamp"] == "1749988800" &&
		h["hash"] == auth.GenerateHash("tok", 1749988800, "alice")
})

var ok = map[string]any{"status": "success", "data": map[string]any{}}

func clock() service.Option {
	return service.WithClock(func() time.Time { return now })
}

func TestAuthenticate(t *testing.T) {
	doer := &mockDoer{}
	a := auth.New("alice")
	svc := service.NewAuthService(doer, a)

	doer.On("Do", mock.Anything, http.MethodPost, "auth",
		map[string]any{"username": "alice", "password": "s3cret!"}, map[string]string(nil)).
		Return(map[string]any{"status": "success", "data": map[string]any{"token": "T1"}}, nil).Once()

	env, err := svc.Authenticate(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)

	var login model.LoginResponse
	require.NoError(t, env.Decode(&login))
	assert.Equal(t, "T1", login.Token)
	assert.False(t, svc.IsTokenValid())

	doer.On("Do", mock.Anything, http.MethodPost, "auth", mock.Anything, mock.Anything).
		Return(map[string]any{"status": "error", "message": "Wrong password"}, nil).Once()
	_, err = svc.Authenticate(context.Background(), "alice", "wrong-pass")
	require.ErrorIs(t, err, sdkerr.ErrAuthentication)
	var aerr *sdkerr.AuthenticationError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, []string{"Wrong password"}, aerr.Errors)

	doer.On("Do", mock.Anything, http.MethodPost, "auth", mock.Anything, mock.Anything).
		Return(nil, sdkerr.FromHTTPStatus(401, "Invalid credentials", nil, "")).Once()
	_, err = svc.Authenticate(context.Background(), "alice", "wrong-pass")
	assert.ErrorIs(t, err, sdkerr.ErrAuthentication)

	netErr := sdkerr.NetworkError(errors.New("connection refused"))
	doer.On("Do", mock.Anything, http.MethodPost, "auth", mock.Anything, mock.Anything).
		Return(nil, netErr).Once()
	_, err = svc.Authenticate(context.Background(), "alice", "wrong-pass")
	assert.ErrorIs(t, err, sdkerr.ErrNetwork)

	_, err = svc.Authenticate(context.Background(), "ab", "123456")
	assert.ErrorIs(t, err, sdkerr.ErrValidation)

	doer.AssertExpectations(t)
}

func TestSignedCallsNeedToken(t *testing.T) {
	doer := &mockDoer{}
	svc := service.NewAccountService(doer, auth.New("alice"))

	_, err := svc.List(context.Background(), nil)
	require.ErrorIs(t, err, sdkerr.ErrAuthentication)
	var aerr *sdkerr.AuthenticationError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, []string{"Authentication token is required for this request"}, aerr.Errors)
	doer.AssertNotCalled(t, "Do")
}

func TestListClampsPerPage(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]any
		want    map[string]any
	}{
		{"default", nil, map[string]any{"per_page": 25}},
		{"above max", map[string]any{"per_page": 500}, map[string]any{"per_page": 100}},
		{"below min", map[string]any{"per_page": "0"}, map[string]any{"per_page": 1}},
		{"filters kept", map[string]any{"status": 1, "user_number": "", "page": 2}, map[string]any{"per_page": 25, "status": 1, "page": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{}
			doer.On("Do", mock.Anything, http.MethodGet, "accounts", tt.want, signed).Return(ok, nil).Once()

			svc := service.NewAccountService(doer, signedSession())
			_, err := svc.List(context.Background(), tt.filters)
			require.NoError(t, err)
			doer.AssertExpectations(t)
		})
	}

	doer := &mockDoer{}
	doer.On("Do", mock.Anything, http.MethodGet, "transactions", map[string]any{"per_page": 50}, signed).Return(ok, nil).Once()
	_, err := service.NewTransactionService(doer, signedSession()).List(context.Background(), nil)
	require.NoError(t, err)
	doer.AssertExpectations(t)
}

func TestSearchRejectsPerPage(t *testing.T) {
	doer := &mockDoer{}
	svc := service.NewAccountService(doer, signedSession())

	_, err := svc.Search(context.Background(), map[string]any{"per_page": 101})
	require.ErrorIs(t, err, sdkerr.ErrValidation)

	doer.On("Do", mock.Anything, http.MethodPost, "accounts/search", map[string]any{"per_page": 20, "currency": 2}, signed).
		Return(ok, nil).Once()
	_, err = svc.Search(context.Background(), map[string]any{"per_page": 20, "currency": "2"})
	require.NoError(t, err)
	doer.AssertExpectations(t)
}

func TestShowEscapesIdentifier(t *testing.T) {
	doer := &mockDoer{}
	doer.On("Do", mock.Anything, http.MethodGet, "accounts/ACC%2F1", map[string]any{}, signed).Return(ok, nil).Once()

	svc := service.NewAccountService(doer, signedSession())
	_, err := svc.Show(context.Background(), "ACC/1")
	require.NoError(t, err)

	_, err = svc.Show(context.Background(), "  ")
	assert.Equal(t, "account_number", requireValidation(t, err).Field())
	doer.AssertExpectations(t)
}

func TestRegisterAddsType(t *testing.T) {
	doer := &mockDoer{}
	doer.On("Do", mock.Anything, http.MethodPost, "users/register/personal",
		mock.MatchedBy(func(b map[string]any) bool { return b["type"] == 1 && b["email"] == "jane@example.com" }), signed).
		Return(ok, nil).Once()

	svc := service.NewUserService(doer, signedSession(), clock())
	_, err := svc.RegisterPersonal(context.Background(), map[string]any{
		"first_name":        "Jane",
		"last_name":         "Doe",
		"email":             "jane@example.com",
		"password":          "s3cret-pass",
		"call_number":       "+447911123456",
		"date_of_birth":     "1990-04-01",
		"citizenship":       "GB",
		"address":           "1 High Street",
		"city":              "London",
		"state_or_province": "London",
		"post_code":         "E1 6AN",
		"country":           "GB",
		"currencies":        []any{1},
		"selected_service":  []any{"card"},
		"terms_accepted":    true,
	})
	require.NoError(t, err)
	doer.AssertExpectations(t)
}

func TestCreateTransfer(t *testing.T) {
	doer := &mockDoer{}
	svc := service.NewTransactionService(doer, signedSession())

	_, err := svc.Create(context.Background(), "wire", map[string]any{})
	assert.Equal(t, "type", requireValidation(t, err).Field())

	doer.On("Do", mock.Anything, http.MethodPost, "transactions/sepa",
		map[string]any{
			"account_number": "1234567890",
			"amount":         10.5,
			"recipient_iban": "DE89370400440532013000",
			"recipient_name": "Max Mustermann",
		}, signed).Return(ok, nil).Once()
	_, err = svc.Create(context.Background(), "SEPA", map[string]any{
		"account_number": "1234567890",
		"amount":         "10.5",
		"recipient_iban": "DE89370400440532013000",
		"recipient_name": "Max Mustermann",
		"ignored":        true,
	})
	require.NoError(t, err)

	_, err = svc.CreateSwift(context.Background(), map[string]any{"account_number": "1234567890"})
	assert.ErrorIs(t, err, sdkerr.ErrValidation)

	doer.On("Do", mock.Anything, http.MethodPost, "transactions/interac",
		map[string]any{"account_number": "1234567890", "amount": 5, "email": "x@y.ca"}, signed).Return(ok, nil).Once()
	_, err = svc.Create(context.Background(), "interac", map[string]any{"account_number": "1234567890", "amount": 5, "email": "x@y.ca"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "internal", map[string]any{"account_number": "1234567890", "amount": -1})
	assert.Equal(t, "amount", requireValidation(t, err).Field())

	doer.AssertExpectations(t)
}

func TestExchange(t *testing.T) {
	doer := &mockDoer{}
	svc := service.NewExchangeService(doer, signedSession(), clock())

	doer.On("Do", mock.Anything, http.MethodGet, "exchange/rate",
		map[string]any{"from": "USD", "to": "EUR", "amount": 10.13}, signed).Return(ok, nil).Once()
	_, err := svc.Conversion(context.Background(), "usd", " eur", 10.125, nil)
	require.NoError(t, err)

	_, err = svc.Conversion(context.Background(), "USD", "usd", 10, nil)
	assert.Equal(t, "currency_pair", requireValidation(t, err).Field())

	for _, amount := range []float64{math.NaN(), math.Inf(1)} {
		require.NotPanics(t, func() {
			_, err = svc.Conversion(context.Background(), "USD", "EUR", amount, nil)
		})
		assert.Equal(t, "amount", requireValidation(t, err).Field())
	}

	doer.On("Do", mock.Anything, http.MethodGet, "exchange/rate",
		map[string]any{"from": "GBP", "to": "EUR", "date": "2025-01-10", "precision": 4}, signed).Return(ok, nil).Once()
	_, err = svc.HistoricalRate(context.Background(), "gbp", "eur", "2025-01-10", map[string]any{"precision": 4})
	require.NoError(t, err)

	_, err = svc.HistoricalRate(context.Background(), "GBP", "EUR", "2023-01-10", nil)
	assert.Equal(t, "date", requireValidation(t, err).Field())

	doer.AssertExpectations(t)
}

func TestExport(t *testing.T) {
	doer := &mockDoer{}
	svc := service.NewExportService(doer, signedSession())

	_, err := svc.Cards(context.Background(), map[string]any{"columns": []any{"card_id", "iban"}})
	assert.Equal(t, "columns", requireValidation(t, err).Field())

	_, err = svc.Users(context.Background(), map[string]any{"date_from": "2024-01-01", "date_to": "2025-01-02"})
	assert.ErrorIs(t, err, sdkerr.ErrValidation)

	doer.On("Do", mock.Anything, http.MethodPost, "export/accounts",
		map[string]any{"format": "csv", "columns": []string{"iban"}}, signed).
		Return(map[string]any{"status": "success", "data": map[string]any{"export_id": "exp_1"}}, nil).Once()
	env, err := svc.Accounts(context.Background(), map[string]any{"format": "csv", "columns": []any{"iban"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"export_id": "exp_1"}, env.Data())

	assert.Contains(t, svc.Columns(model.ExportTransactions), "transaction_number")
	doer.AssertExpectations(t)
}

func TestTransportErrorsPassThrough(t *testing.T) {
	doer := &mockDoer{}
	apiErr := sdkerr.FromHTTPStatus(503, "", nil, "")
	doer.On("Do", mock.Anything, http.MethodGet, "cards/C-1", mock.Anything, signed).Return(nil, apiErr).Once()

	_, err := service.NewCardService(doer, signedSession()).Show(context.Background(), "C-1")
	assert.Same(t, apiErr, err)
	doer.AssertExpectations(t)
}

func requireValidation(t *testing.T, err error) *sdkerr.ValidationError {
	t.Helper()
	var verr *sdkerr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr
}
