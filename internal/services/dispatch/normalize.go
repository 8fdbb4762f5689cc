package dispatch

import (
	"encoding/json"
	"errors"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sdkfinance"
)

var unknownUpstreamError = json.RawMessage(`{"message":"Unknown error from upstream"}`)

// Normalize turns an upstream error response into an ErrorEnvelope. It
// reports false for every other failure, which must then be treated as
// unexpected.
func Normalize(err error) (ErrorEnvelope, bool) {
	var respErr *sdkfinance.ResponseError
	if err == nil || !errors.As(err, &respErr) || respErr == nil {
		return ErrorEnvelope{}, false
	}

	data := respErr.Body
	if len(data) == 0 {
		data = append(json.RawMessage(nil), unknownUpstreamError...)
	}
	return ErrorEnvelope{Status: respErr.StatusCode, Data: data}, true
}
