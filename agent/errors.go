package agent

import "errors"

var (
	// ErrStoreRequired is returned when a session store is not provided.
	ErrStoreRequired = errors.New("session store required")

	// ErrGatewayRequired is returned when a provider gateway is not provided.
	ErrGatewayRequired = errors.New("provider gateway required")
)
