package domain

import "fmt"

// ConnectionError means resolving or binding a player failed. It is fatal
// for the current refresh pass only; no partial session is left installed
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect to player %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DirectoryError means listing the running players failed. Fatal for the
// current pass only
type DirectoryError struct {
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("unable to list players: %v", e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// QueryError is a per-field fetch failure during snapshot construction.
// It aborts the whole snapshot; the cycle yields "no data" and the next
// triggered pass retries
type QueryError struct {
	Player string
	Field  string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s of player %s: %v", e.Field, e.Player, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// TemplateError means a template referenced a placeholder that cannot be
// substituted for the current snapshot. Recoverable: the update is skipped
// and the prior rendered output stays on screen
type TemplateError struct {
	Placeholder string
	Reason      string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("placeholder {%s}: %s", e.Placeholder, e.Reason)
}
