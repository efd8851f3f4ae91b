package runerrors

import "errors"

// Sentinel errors shared by the lobby, ws and api packages without import cycles.
var (
	ErrRunNotFound       = errors.New("run not found")
	ErrRunFinished       = errors.New("run finished")
	ErrNoActiveRun       = errors.New("no active run for this client")
	ErrRunInProgress     = errors.New("a run is already in progress")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrAuthNotConfigured = errors.New("server auth not configured")
)
