package sdkfinance

import (
	"context"
	"encoding/json"
)

type CurrencyType string

const (
	CurrencyTypeFiat    CurrencyType = "FIAT"
	CurrencyTypeCrypto  CurrencyType = "CRYPTO"
	CurrencyTypeBonus   CurrencyType = "BONUS"
	CurrencyTypeVirtual CurrencyType = "VIRTUAL"
)

func (t CurrencyType) Valid() bool {
	switch t {
	case CurrencyTypeFiat, CurrencyTypeCrypto, CurrencyTypeBonus, CurrencyTypeVirtual:
		return true
	default:
		return false
	}
}

type CreateCurrencyParams struct {
	CurrencyCode         string       `json:"currencyCode"`
	DigitalCode          string       `json:"digitalCode,omitempty"`
	Name                 string       `json:"name"`
	Symbol               string       `json:"symbol,omitempty"`
	Fraction             int          `json:"fraction"`
	Scale                int          `json:"scale"`
	Active               *bool        `json:"active,omitempty"`
	SnPrefix             string       `json:"snPrefix,omitempty"`
	AvailableForExchange *bool        `json:"availableForExchange,omitempty"`
	Type                 CurrencyType `json:"type"`
}

// UpdateCurrencyParams is a partial update; nil fields are not sent.
type UpdateCurrencyParams struct {
	CurrencyCode         *string       `json:"currencyCode,omitempty"`
	DigitalCode          *string       `json:"digitalCode,omitempty"`
	Name                 *string       `json:"name,omitempty"`
	Symbol               *string       `json:"symbol,omitempty"`
	Fraction             *int          `json:"fraction,omitempty"`
	Scale                *int          `json:"scale,omitempty"`
	Active               *bool         `json:"active,omitempty"`
	SnPrefix             *string       `json:"snPrefix,omitempty"`
	AvailableForExchange *bool         `json:"availableForExchange,omitempty"`
	Type                 *CurrencyType `json:"type,omitempty"`
}

type CurrencyViewFilters struct {
	Name                 *string       `json:"name,omitempty"`
	CurrencyCode         *string       `json:"currencyCode,omitempty"`
	Active               *bool         `json:"active,omitempty"`
	IsMain               *bool         `json:"isMain,omitempty"`
	Type                 *CurrencyType `json:"type,omitempty"`
	AvailableForExchange *bool         `json:"availableForExchange,omitempty"`
}

type CurrencySort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type CurrencyViewParams struct {
	PageNumber *int                 `json:"pageNumber,omitempty"`
	PageSize   *int                 `json:"pageSize,omitempty"`
	Filters    *CurrencyViewFilters `json:"filters,omitempty"`
	Sort       []CurrencySort       `json:"sort,omitempty"`
}

// API is the set of upstream currency operations available to an
// authenticated caller. Request bodies are typed; success payloads are the
// upstream JSON as received so no field the upstream adds is lost.
type API interface {
	GetCurrencies(ctx context.Context) (json.RawMessage, error)
	CreateCurrency(ctx context.Context, params CreateCurrencyParams) (json.RawMessage, error)
	GetCurrenciesView(ctx context.Context, params CurrencyViewParams) (json.RawMessage, error)
	UpdateCurrency(ctx context.Context, currencyID string, params UpdateCurrencyParams) (json.RawMessage, error)
	SetMainCurrency(ctx context.Context, currencyID string) (json.RawMessage, error)
}
