package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/currencies"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/dispatch"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/tokens"
	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/dto"
	httperrors "github.com/novatidelabs/synkpay-banking-service/internal/transport/http/errors"
)

const (
	msgGetCurrencies     = "Could not get currencies"
	msgCreateCurrency    = "Could not create currency"
	msgGetCurrenciesView = "Could not get currencies view"
	msgUpdateCurrency    = "Could not update currency"
	msgSetMainCurrency   = "Could not set main currency"
)

type CurrencyService interface {
	GetCurrencies(ctx context.Context, callerID, authorization string) (dispatch.Result[json.RawMessage], error)
	CreateCurrency(ctx context.Context, callerID, authorization string, params sdkfinance.CreateCurrencyParams) (dispatch.Result[json.RawMessage], error)
	GetCurrenciesView(ctx context.Context, callerID, authorization string, params sdkfinance.CurrencyViewParams) (dispatch.Result[json.RawMessage], error)
	UpdateCurrency(ctx context.Context, callerID, authorization, currencyID string, params sdkfinance.UpdateCurrencyParams) (dispatch.Result[json.RawMessage], error)
	SetMainCurrency(ctx context.Context, callerID, authorization, currencyID string) (dispatch.Result[json.RawMessage], error)
}

type CurrenciesHandler struct {
	service CurrencyService
	log     *zap.Logger
}

func NewCurrenciesHandler(service CurrencyService, log *zap.Logger) *CurrenciesHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CurrenciesHandler{service: service, log: log}
}

func (h *CurrenciesHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	callerID := callerIDFromQuery(r)
	result, err := h.service.GetCurrencies(r.Context(), callerID, r.Header.Get("Authorization"))
	writeResult(w, r, h.log, callerID, msgGetCurrencies, result, err)
}

func (h *CurrenciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req dto.CreateCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid json body")
		return
	}
	params, err := req.Params()
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "currencyCode, name and a valid type are required")
		return
	}

	callerID := callerIDFromQuery(r)
	result, err := h.service.CreateCurrency(r.Context(), callerID, r.Header.Get("Authorization"), params)
	writeResult(w, r, h.log, callerID, msgCreateCurrency, result, err)
}

func (h *CurrenciesHandler) View(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req dto.CurrencyViewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid json body")
		return
	}
	params, err := req.Params()
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid paging, filter or sort parameters")
		return
	}

	callerID := callerIDFromQuery(r)
	result, err := h.service.GetCurrenciesView(r.Context(), callerID, r.Header.Get("Authorization"), params)
	writeResult(w, r, h.log, callerID, msgGetCurrenciesView, result, err)
}

func (h *CurrenciesHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	currencyID, ok := currencyIDParam(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid json body")
		return
	}
	params, err := req.Params()
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid currency update")
		return
	}

	callerID := callerIDFromQuery(r)
	result, err := h.service.UpdateCurrency(r.Context(), callerID, r.Header.Get("Authorization"), currencyID, params)
	writeResult(w, r, h.log, callerID, msgUpdateCurrency, result, err)
}

func (h *CurrenciesHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	currencyID, ok := currencyIDParam(w, r)
	if !ok {
		return
	}

	callerID := callerIDFromQuery(r)
	result, err := h.service.SetMainCurrency(r.Context(), callerID, r.Header.Get("Authorization"), currencyID)
	writeResult(w, r, h.log, callerID, msgSetMainCurrency, result, err)
}

func (h *CurrenciesHandler) available(w http.ResponseWriter) bool {
	if h.service == nil {
		writeInternal(w, "CURRENCY_SERVICE_UNAVAILABLE", "currency service is unavailable")
		return false
	}
	return true
}

func currencyIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	currencyID := chi.URLParam(r, "currencyId")
	if currencyID == "" {
		writeBadRequest(w, "INVALID_REQUEST", "currencyId is required")
		return "", false
	}
	return currencyID, true
}

// writeResult maps a facade outcome to the response. Upstream payloads and
// envelopes are written as received; only the status is chosen here.
func writeResult(w http.ResponseWriter, r *http.Request, log *zap.Logger, callerID, credentialMessage string, result dispatch.Result[json.RawMessage], err error) {
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrCredentialNotFound):
			httperrors.Write(w, http.StatusForbidden, dto.CredentialErrorResponse{Error: credentialMessage})
		case errors.Is(err, currencies.ErrInvalidCurrencyID):
			writeBadRequest(w, "INVALID_REQUEST", "currencyId is required")
		default:
			writeUnexpected(w, r, log, callerID, err)
		}
		return
	}

	if envelope, ok := result.Envelope(); ok {
		httperrors.WriteRaw(w, envelope.Status, envelope.Data)
		return
	}
	value, _ := result.Value()
	httperrors.WriteRaw(w, http.StatusOK, value)
}
