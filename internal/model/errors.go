package model

import "errors"

var (
	// ErrUnauthorized marks any 401 response from the backend.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired signals that the session has been torn down and the
	// caller must redirect to the login entry point.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotConfirmed is returned when a delete is requested without the
	// user's explicit confirmation. No request is issued in that case.
	ErrNotConfirmed = errors.New("delete not confirmed")
	// ErrRequestInFlight rejects a repeat of an operation that is still
	// outstanding.
	ErrRequestInFlight = errors.New("request already in flight")
)
