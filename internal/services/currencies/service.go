package currencies

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/dispatch"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
)

var ErrInvalidCurrencyID = errors.New("currency id is required")

type TokenResolver interface {
	Resolve(ctx context.Context, callerID, authorization string) (string, error)
}

type Service struct {
	tokens     TokenResolver
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger
}

func NewService(tokens TokenResolver, dispatcher *dispatch.Dispatcher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tokens: tokens, dispatcher: dispatcher, log: log}
}

func (s *Service) GetCurrencies(ctx context.Context, callerID, authorization string) (dispatch.Result[json.RawMessage], error) {
	return invoke(ctx, s, callerID, authorization, dispatch.OpGetCurrencies,
		func(ctx context.Context, api sdkfinance.API) (json.RawMessage, error) {
			return api.GetCurrencies(ctx)
		})
}

func (s *Service) CreateCurrency(ctx context.Context, callerID, authorization string, params sdkfinance.CreateCurrencyParams) (dispatch.Result[json.RawMessage], error) {
	return invoke(ctx, s, callerID, authorization, dispatch.OpCreateCurrency,
		func(ctx context.Context, api sdkfinance.API) (json.RawMessage, error) {
			return api.CreateCurrency(ctx, params)
		})
}

func (s *Service) GetCurrenciesView(ctx context.Context, callerID, authorization string, params sdkfinance.CurrencyViewParams) (dispatch.Result[json.RawMessage], error) {
	return invoke(ctx, s, callerID, authorization, dispatch.OpListCurrenciesPaged,
		func(ctx context.Context, api sdkfinance.API) (json.RawMessage, error) {
			return api.GetCurrenciesView(ctx, params)
		})
}

func (s *Service) UpdateCurrency(ctx context.Context, callerID, authorization, currencyID string, params sdkfinance.UpdateCurrencyParams) (dispatch.Result[json.RawMessage], error) {
	if currencyID == "" {
		return dispatch.Result[json.RawMessage]{}, ErrInvalidCurrencyID
	}
	return invoke(ctx, s, callerID, authorization, dispatch.OpUpdateCurrency,
		func(ctx context.Context, api sdkfinance.API) (json.RawMessage, error) {
			return api.UpdateCurrency(ctx, currencyID, params)
		})
}

func (s *Service) SetMainCurrency(ctx context.Context, callerID, authorization, currencyID string) (dispatch.Result[json.RawMessage], error) {
	if currencyID == "" {
		return dispatch.Result[json.RawMessage]{}, ErrInvalidCurrencyID
	}
	return invoke(ctx, s, callerID, authorization, dispatch.OpSetMainCurrency,
		func(ctx context.Context, api sdkfinance.API) (json.RawMessage, error) {
			return api.SetMainCurrency(ctx, currencyID)
		})
}

// invoke resolves the credential and dispatches one upstream call. A missing
// credential is returned as error before any upstream traffic.
func invoke[T any](ctx context.Context, s *Service, callerID, authorization string, op dispatch.Operation, call func(context.Context, sdkfinance.API) (T, error)) (dispatch.Result[T], error) {
	token, err := s.tokens.Resolve(ctx, callerID, authorization)
	if err != nil {
		return dispatch.Result[T]{}, err
	}

	return dispatch.Invoke(ctx, s.dispatcher, dispatch.Request{
		CallerID:  callerID,
		Token:     token,
		Operation: op,
	}, call)
}
