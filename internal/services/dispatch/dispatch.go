package dispatch

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
)

type Operation string

const (
	OpGetCurrencies       Operation = "get-currencies"
	OpCreateCurrency      Operation = "create-currency"
	OpListCurrenciesPaged Operation = "list-currencies-paged"
	OpUpdateCurrency      Operation = "update-currency"
	OpSetMainCurrency     Operation = "set-main-currency"
)

// ClientFactory builds an upstream client bound to one access token.
type ClientFactory func(accessToken string) sdkfinance.API

type Dispatcher struct {
	newClient ClientFactory
	log       *zap.Logger
}

func New(factory ClientFactory, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{newClient: factory, log: log}
}

type Request struct {
	CallerID  string
	Token     string
	Operation Operation
}

// Invoke performs exactly one upstream call with a client built for
// req.Token. Upstream error responses come back as Err results; any other
// failure is returned unchanged as error.
func Invoke[T any](ctx context.Context, d *Dispatcher, req Request, call func(context.Context, sdkfinance.API) (T, error)) (Result[T], error) {
	if d == nil || d.newClient == nil {
		return Result[T]{}, errors.New("dispatcher is not initialized")
	}

	value, err := call(ctx, d.newClient(req.Token))
	if err == nil {
		return Ok(value), nil
	}

	envelope, ok := Normalize(err)
	if !ok {
		return Result[T]{}, err
	}

	d.log.Error("upstream request failed",
		zap.String("operation", string(req.Operation)),
		zap.String("caller_id", req.CallerID),
		zap.Int("status", envelope.Status),
		zap.ByteString("body", envelope.Data),
	)
	return Err[T](envelope), nil
}
