package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Change trail related errors
var (
	ErrSubjectNotTracked = errors.Wrap(BadParameterError, "subject type is not tracked")
	ErrInvalidAction     = errors.Wrap(BadParameterError, "invalid change action")
	ErrNoSnapshotApplier = errors.Wrap(BadParameterError,
		"no snapshot applier registered for subject type")
	ErrRevertAcrossDeletion = errors.Wrap(BadParameterError,
		"cannot revert to a state past the subject's deletion")
)
