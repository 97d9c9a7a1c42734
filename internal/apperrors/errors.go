package apperrors

import "errors"

// Rate resolution errors describe why a day's conversion rates could not be produced.
var (
	// ErrSourceUnreachable indicates a transport failure or non-2xx response
	// from the external rate source.
	ErrSourceUnreachable = errors.New("rate source unreachable")

	// ErrParseFailed indicates the source document was fetched but no
	// extraction strategy produced a complete snapshot.
	ErrParseFailed = errors.New("rate source document could not be parsed")

	// ErrRateUnavailable indicates both fresh resolution and the cached
	// fallback were exhausted.
	ErrRateUnavailable = errors.New("exchange rates unavailable")

	// ErrSnapshotNotFound indicates no snapshot is stored for the requested date.
	ErrSnapshotNotFound = errors.New("rate snapshot for date not found")
)

// Calculation errors are returned verbatim by the tariff engine.
var (
	// ErrUnknownCurrency indicates a conversion was requested for a code
	// absent from the snapshot.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrUnsupportedBracket indicates the vehicle age bracket has no tariff policy.
	ErrUnsupportedBracket = errors.New("unsupported age bracket")

	ErrInvalidVehicle = errors.New("invalid vehicle description")
)

// Configuration errors.
var (
	// ErrDeliveryConfigNotFound indicates the delivery configuration row is missing.
	ErrDeliveryConfigNotFound = errors.New("delivery configuration not found")

	ErrInvalidDeliveryConfig = errors.New("invalid delivery configuration")
	ErrInvalidDate           = errors.New("date parameter must be YYYY-MM-DD")
)
