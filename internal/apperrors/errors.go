package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrIDMismatch indicates that the identifier in the request path and the
// identifier in the request body disagree on an update.
var ErrIDMismatch = errors.New("path and body identifiers differ")

// ErrUserNotIdentified indicates that the remote user lookup answered with
// the id == 0 "not found" sentinel during a report export.
var ErrUserNotIdentified = errors.New("user not identified")

// ErrRemoteCommunication indicates that the user API could not be reached
// or answered with an error.
var ErrRemoteCommunication = errors.New("user api communication failure")

// ErrExportFailed is the single failure mode callers observe for any
// infrastructure error inside the report export pipeline. The underlying
// cause is logged, never surfaced to the caller.
var ErrExportFailed = errors.New("report export failed")
