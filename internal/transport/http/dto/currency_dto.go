package dto

import (
	"errors"
	"strings"

	"github.com/novatidelabs/synkpay-banking-service/internal/pkg/validate"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
)

var ErrValidation = errors.New("validation failed")

type CreateCurrencyRequest struct {
	CurrencyCode         string                  `json:"currencyCode"`
	DigitalCode          string                  `json:"digitalCode,omitempty"`
	Name                 string                  `json:"name"`
	Symbol               string                  `json:"symbol,omitempty"`
	Fraction             int                     `json:"fraction"`
	Scale                int                     `json:"scale"`
	Active               *bool                   `json:"active,omitempty"`
	SnPrefix             string                  `json:"snPrefix,omitempty"`
	AvailableForExchange *bool                   `json:"availableForExchange,omitempty"`
	Type                 sdkfinance.CurrencyType `json:"type"`
}

func (r CreateCurrencyRequest) Params() (sdkfinance.CreateCurrencyParams, error) {
	if !validate.Required(r.CurrencyCode) || !validate.Required(r.Name) {
		return sdkfinance.CreateCurrencyParams{}, ErrValidation
	}
	if !r.Type.Valid() || r.Fraction < 0 || r.Scale < 0 {
		return sdkfinance.CreateCurrencyParams{}, ErrValidation
	}
	return sdkfinance.CreateCurrencyParams{
		CurrencyCode:         strings.TrimSpace(r.CurrencyCode),
		DigitalCode:          r.DigitalCode,
		Name:                 strings.TrimSpace(r.Name),
		Symbol:               r.Symbol,
		Fraction:             r.Fraction,
		Scale:                r.Scale,
		Active:               r.Active,
		SnPrefix:             r.SnPrefix,
		AvailableForExchange: r.AvailableForExchange,
		Type:                 r.Type,
	}, nil
}

type UpdateCurrencyRequest struct {
	CurrencyCode         *string                  `json:"currencyCode,omitempty"`
	DigitalCode          *string                  `json:"digitalCode,omitempty"`
	Name                 *string                  `json:"name,omitempty"`
	Symbol               *string                  `json:"symbol,omitempty"`
	Fraction             *int                     `json:"fraction,omitempty"`
	Scale                *int                     `json:"scale,omitempty"`
	Active               *bool                    `json:"active,omitempty"`
	SnPrefix             *string                  `json:"snPrefix,omitempty"`
	AvailableForExchange *bool                    `json:"availableForExchange,omitempty"`
	Type                 *sdkfinance.CurrencyType `json:"type,omitempty"`
}

func (r UpdateCurrencyRequest) Params() (sdkfinance.UpdateCurrencyParams, error) {
	if r.Type != nil && !r.Type.Valid() {
		return sdkfinance.UpdateCurrencyParams{}, ErrValidation
	}
	if !validate.NonNegative(r.Fraction) || !validate.NonNegative(r.Scale) {
		return sdkfinance.UpdateCurrencyParams{}, ErrValidation
	}
	return sdkfinance.UpdateCurrencyParams{
		CurrencyCode:         r.CurrencyCode,
		DigitalCode:          r.DigitalCode,
		Name:                 r.Name,
		Symbol:               r.Symbol,
		Fraction:             r.Fraction,
		Scale:                r.Scale,
		Active:               r.Active,
		SnPrefix:             r.SnPrefix,
		AvailableForExchange: r.AvailableForExchange,
		Type:                 r.Type,
	}, nil
}

type CurrencyViewRequest struct {
	PageNumber *int                            `json:"pageNumber,omitempty"`
	PageSize   *int                            `json:"pageSize,omitempty"`
	Filters    *sdkfinance.CurrencyViewFilters `json:"filters,omitempty"`
	Sort       []sdkfinance.CurrencySort       `json:"sort,omitempty"`
}

func (r CurrencyViewRequest) Params() (sdkfinance.CurrencyViewParams, error) {
	if !validate.NonNegative(r.PageNumber) || !validate.Positive(r.PageSize) {
		return sdkfinance.CurrencyViewParams{}, ErrValidation
	}
	if r.Filters != nil && r.Filters.Type != nil && !r.Filters.Type.Valid() {
		return sdkfinance.CurrencyViewParams{}, ErrValidation
	}
	for _, sort := range r.Sort {
		if !validate.Required(sort.Field) || !validate.OneOfFold(sort.Direction, "asc", "desc") {
			return sdkfinance.CurrencyViewParams{}, ErrValidation
		}
	}
	return sdkfinance.CurrencyViewParams{
		PageNumber: r.PageNumber,
		PageSize:   r.PageSize,
		Filters:    r.Filters,
		Sort:       r.Sort,
	}, nil
}

// CredentialErrorResponse is returned when no credential could be resolved.
type CredentialErrorResponse struct {
	Error string `json:"error"`
}
