package errors

import "net/http"

var (
	ErrEmptyGeometry = New(
		"EMPTY_GEOMETRY",
		"Route geometry has fewer than 2 points",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Category is not part of the taxonomy",
		http.StatusBadRequest,
	)

	ErrMalformedRecord = New(
		"MALFORMED_RECORD",
		"Provider record cannot be normalized",
		http.StatusUnprocessableEntity,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Provider request or parsing failed",
		http.StatusBadGateway,
	)

	ErrUnknownProvider = New(
		"UNKNOWN_PROVIDER",
		"Unknown provider identifier",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
