package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

const defaultPrecision = 6

// BankHandler serves canned platform endpoints. Inputs go through the same
// DTO checks the client applies, so a payload the client accepts is one the
// server accepts. Transfers on rails without a DTO only have their amount
// checked.
type BankHandler struct {
	bank   *Bank
	logger *zap.Logger
}

func NewBankHandler(b *Bank, l *zap.Logger) *BankHandler {
	return &BankHandler{
		bank:   b,
		logger: l,
	}
}

// ExchangeRate answers both the spot quote and, when date is present, the
// historical one.
func (h *BankHandler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	query := queryMap(r.URL.Query())

	var from, to string
	var amount *float64
	var precision *int
	if _, ok := query["date"]; ok {
		dto, err := model.FromMap[model.HistoricalRate](query, model.WithClock(h.bank.Now))
		if err != nil {
			respondWithValidation(w, err)
			return
		}
		from, to, amount, precision = *dto.From, *dto.To, dto.Amount, dto.Precision
	} else {
		dto, err := model.FromMap[model.GetRate](query, model.WithClock(h.bank.Now))
		if err != nil {
			respondWithValidation(w, err)
			return
		}
		from, to, amount, precision = *dto.From, *dto.To, dto.Amount, dto.Precision
	}

	places := int32(defaultPrecision)
	if precision != nil {
		places = int32(*precision)
	}
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rate, ok := Rate(from, to, places)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Rate not available", fmt.Sprintf("No quote for %s/%s", from, to))
		return
	}

	data := map[string]any{
		"from":          from,
		"to":            to,
		"currency_pair": from + "/" + to,
		"rate":          rate.String(),
		"timestamp":     h.bank.Now().Unix(),
	}
	if date, ok := query["date"]; ok {
		data["date"] = date
	}
	if amount != nil {
		a := decimal.NewFromFloat(*amount)
		data["amount"] = a.StringFixed(2)
		data["converted_amount"] = a.Mul(rate).StringFixed(2)
	}
	respondWithData(w, http.StatusOK, data)
}

func (h *BankHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	dto, err := model.FromMap[model.TotalBalance](queryMap(r.URL.Query()))
	if err != nil {
		respondWithValidation(w, err)
		return
	}
	id, ok := dto.Currency.ID()
	if !ok {
		respondWithValidation(w, sdkerr.InvalidCurrency("currency", dto.Currency.String()))
		return
	}
	code := enum.Currency(id).Code()
	respondWithData(w, http.StatusOK, map[string]any{
		"currency":      code,
		"currency_id":   id,
		"total_balance": h.bank.Balance(code).StringFixed(2),
	})
}

func (h *BankHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	dto, err := model.FromMap[model.ListUsers](queryMap(r.URL.Query()))
	if err != nil {
		respondWithValidation(w, err)
		return
	}
	users := []map[string]any{
		{"user_number": "100001", "email": "ana@example.com", "type": int(enum.ClientPersonal), "country": "ES"},
		{"user_number": "100002", "email": "ops@acme.example", "type": int(enum.ClientBusiness), "country": "GB"},
	}
	respondWithPage(w, users, pagination(dto.Page, dto.PerPage, len(users)))
}

func (h *BankHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	dto, err := model.FromMap[model.ListAccounts](queryMap(r.URL.Query()))
	if err != nil {
		respondWithValidation(w, err)
		return
	}
	accounts := []map[string]any{
		{"account_number": "ACC100001", "user_number": "100001", "currency": int(enum.USD), "balance": h.bank.Balance("USD").StringFixed(2)},
		{"account_number": "ACC100002", "user_number": "100001", "currency": int(enum.EUR), "balance": h.bank.Balance("EUR").StringFixed(2)},
	}
	respondWithPage(w, accounts, pagination(dto.Page, dto.PerPage, len(accounts)))
}

func (h *BankHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	dto, err := model.FromMap[model.CreateAccount](body)
	if err != nil {
		respondWithValidation(w, err)
		return
	}
	respondWithJson(w, http.StatusCreated, envelope{
		Status:  "success",
		Message: "Account created",
		Data: map[string]any{
			"account_number": "ACC" + strings.ToUpper(uuid.NewString()[:8]),
			"user_number":    *dto.UserNumber,
			"currency":       dto.Currency.Value(),
			"balance":        "0.00",
		},
	})
}

// CreateTransaction accepts any transfer type and queues it as pending.
func (h *BankHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "type")
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if err := validateTransfer(kind, body); err != nil {
		respondWithValidation(w, err)
		return
	}

	amount, err := decimal.NewFromString(fmt.Sprint(body["amount"]))
	if err != nil || !amount.IsPositive() {
		respondWithError(w, http.StatusUnprocessableEntity, "Validation failed", "The amount field must be a positive number")
		return
	}

	agent, _ := AgentFromContext(r.Context())
	h.logger.Info("transfer queued",
		zap.String("agent", agent),
		zap.String("type", kind),
		zap.String("amount", amount.StringFixed(2)),
	)
	respondWithJson(w, http.StatusCreated, envelope{
		Status:  "success",
		Message: "Transaction created",
		Data: map[string]any{
			"transaction_number": uuid.NewString(),
			"type":               kind,
			"amount":             amount.StringFixed(2),
			"status":             int(enum.TransactionNew),
		},
	})
}

// validateTransfer applies the rail DTO checks. Rails without a DTO only get
// the positive amount check in CreateTransaction.
func validateTransfer(kind string, body map[string]any) error {
	var err error
	switch enum.Rail(strings.ToLower(kind)) {
	case enum.RailSwift:
		_, err = model.FromMap[model.CreateSwiftTransaction](body)
	case enum.RailSEPA:
		_, err = model.FromMap[model.CreateSepaTransaction](body)
	case enum.RailACH:
		_, err = model.FromMap[model.CreateAchTransaction](body)
	case enum.RailBACS:
		_, err = model.FromMap[model.CreateBacsTransaction](body)
	}
	return err
}

func (h *BankHandler) StartExport(w http.ResponseWriter, r *http.Request) {
	resource := model.ExportResource(chi.URLParam(r, "resource"))
	if len(resource.Columns()) == 0 {
		respondWithError(w, http.StatusNotFound, "Resource not found")
		return
	}
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	dto, err := model.FromMap[model.ExportData](body, model.WithClock(h.bank.Now))
	if err != nil {
		respondWithValidation(w, err)
		return
	}
	if err := resource.CheckColumns(dto.Columns); err != nil {
		respondWithValidation(w, err)
		return
	}

	format := "csv"
	if dto.Format != nil {
		format = strings.ToLower(*dto.Format)
	}
	respondWithJson(w, http.StatusAccepted, envelope{
		Status:  "success",
		Message: "Export queued",
		Data: map[string]any{
			"export_id": uuid.NewString(),
			"resource":  string(resource),
			"format":    format,
			"status":    "queued",
		},
	})
}

func (h *BankHandler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	return body, true
}

// queryMap flattens a query string. Repeated key[] parameters become lists.
func queryMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if name, ok := strings.CutSuffix(k, "[]"); ok {
			out[name] = v
			continue
		}
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func pagination(page, perPage *int, total int) map[string]any {
	current, size := 1, 25
	if page != nil {
		current = *page
	}
	if perPage != nil {
		size = *perPage
	}
	last := (total + size - 1) / size
	if last < 1 {
		last = 1
	}
	return map[string]any{
		"current_page": current,
		"per_page":     size,
		"total":        total,
		"last_page":    last,
	}
}
