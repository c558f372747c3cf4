package extraction

import "errors"

var (
	// ErrGatewayRequired is returned when a provider gateway is not provided.
	ErrGatewayRequired = errors.New("provider gateway required")
)
