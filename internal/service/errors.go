package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

var (
	// ErrTenantRequired is returned when a request carries no tenant id.
	ErrTenantRequired = errors.New("tenant id is required")
	// ErrTenantNotFound is returned when the tenant id resolves to no
	// profile.  It matches repository.ErrNotFound.
	ErrTenantNotFound = fmt.Errorf("tenant %w", repository.ErrNotFound)
	// ErrInvalidPayload marks a malformed or incomplete request body.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrAuthentication marks a payment webhook that failed signature
	// verification.
	ErrAuthentication = errors.New("webhook authentication failed")
	// ErrUpstream marks a failure of the payment provider API.
	ErrUpstream = errors.New("payment provider error")
	// ErrNotConfigured is returned when a required secret is missing.
	ErrNotConfigured = errors.New("missing configuration")
	// ErrInsufficientMinutes is returned when a consumption exceeds the
	// balance.
	ErrInsufficientMinutes = errors.New("insufficient minutes")
	// ErrMissingMetadata marks a checkout event without the metadata
	// attached at session creation.
	ErrMissingMetadata = errors.New("missing required metadata")
	// ErrUnknownPack is returned for a pack type absent from the catalog.
	ErrUnknownPack = errors.New("unknown pack type")
)
