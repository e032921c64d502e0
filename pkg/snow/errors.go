package snow

import "fmt"

// Kind classifies a client failure. Callers branch on the kind rather than
// parsing error strings.
type Kind string

const (
	// KindConnection means the instance could not be reached at all
	// (DNS failure, connection refused, timeout). No HTTP status exists.
	KindConnection Kind = "connection"

	// KindAuth means the instance rejected the credentials (HTTP 401).
	KindAuth Kind = "auth"

	// KindNotFound means the requested record or table does not exist (HTTP 404).
	KindNotFound Kind = "not-found"

	// KindPermission means the authenticated user lacks access (HTTP 403).
	KindPermission Kind = "permission"

	// KindRateLimit means the instance is throttling requests (HTTP 429).
	KindRateLimit Kind = "rate-limit"

	// KindAPI covers any other non-2xx response.
	KindAPI Kind = "api"
)

// Error is the typed error returned by every client operation. It carries
// enough context (table, sys_id, status) for a caller to log or branch
// without re-parsing the message.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int // zero for connection-level failures
	Table      string
	SysID      string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	snowErr, ok := err.(*Error)
	return ok && snowErr.Kind == kind
}

func newConnectionError(table, sysID, action string, cause error) *Error {
	target := table
	if sysID != "" {
		target = table + "/" + sysID
	}
	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("%s '%s': %v", action, target, cause),
		Table:   table,
		SysID:   sysID,
	}
}

func newStatusError(status int, table, sysID, detail string) *Error {
	target := table
	if sysID != "" {
		target = table + "/" + sysID
	}

	switch status {
	case 401:
		return &Error{
			Kind:       KindAuth,
			Message:    fmt.Sprintf("authentication failed for table '%s': %s", target, detail),
			StatusCode: status,
			Table:      table,
			SysID:      sysID,
		}
	case 403:
		return &Error{
			Kind:       KindPermission,
			Message:    fmt.Sprintf("permission denied for table '%s': %s", target, detail),
			StatusCode: status,
			Table:      table,
			SysID:      sysID,
		}
	case 404:
		return &Error{
			Kind:       KindNotFound,
			Message:    fmt.Sprintf("not found on table '%s': %s", target, detail),
			StatusCode: status,
			Table:      table,
			SysID:      sysID,
		}
	case 429:
		return &Error{
			Kind:       KindRateLimit,
			Message:    fmt.Sprintf("rate-limited on table '%s': %s", target, detail),
			StatusCode: status,
			Table:      table,
			SysID:      sysID,
		}
	default:
		return &Error{
			Kind:       KindAPI,
			Message:    fmt.Sprintf("API error %d on table '%s': %s", status, target, detail),
			StatusCode: status,
			Table:      table,
			SysID:      sysID,
		}
	}
}
