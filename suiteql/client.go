/*
Package suiteql is the boundary to the remote accounting backend.

PURPOSE:
  Defines the query transport port consumed by the lookup engine, plus the
  loosely-typed Row shape that query results arrive in. Rows are dynamically
  shaped records; callers decode each expected field explicitly with a
  stated default rather than relying on implicit coercions.

KEY TYPES:
  Client:     Port for executing read-only SuiteQL queries
  Row:        One result row (field name -> dynamically-typed value)
  QueryError: Transport failure carrying a machine-readable code

ERROR CONTRACT:
  Transport failures are reported as *QueryError with a distinguishable
  code so callers can log structured diagnostics. "No rows" is never an
  error; an empty slice is a valid result.

SEE ALSO:
  - http.go: OAuth1-signed HTTP implementation of Client
  - netsuite/service.go: Primary consumer
*/
package suiteql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLIENT - Query transport port
// =============================================================================

// Client executes read-only queries against the accounting backend.
type Client interface {
	// QueryRows executes a query expected to fit in a single page.
	QueryRows(ctx context.Context, query string) ([]Row, error)

	// QueryPaginated executes a query whose result set may exceed one page.
	// The ORDER BY clause is always supplied by the caller, never embedded
	// in the query text, so pagination stays deterministic.
	QueryPaginated(ctx context.Context, query string, orderBy string) ([]Row, error)
}

// =============================================================================
// ROW - Loosely-typed result record
// =============================================================================

// Row is one query result record. Field names are lowercase.
type Row map[string]any

// GetString returns the field as a string, "" when absent or null.
// Numeric values are formatted without an exponent since the backend
// serializes ids interchangeably as strings and numbers.
func (r Row) GetString(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "T"
		}
		return "F"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// GetBool decodes the backend's "T"/"F" flag convention, false when absent.
func (r Row) GetBool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "T") || strings.EqualFold(v, "true")
	default:
		return false
	}
}

// GetInt returns the field as an int, 0 when absent or unparseable.
func (r Row) GetInt(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// =============================================================================
// QUERY ERROR - Transport failure with machine-readable code
// =============================================================================

// Error codes reported by Client implementations.
const (
	CodeNetwork      = "network"      // request never reached the backend
	CodeHTTPStatus   = "http_status"  // backend answered with a non-2xx status
	CodeDecode       = "decode"       // backend answered with an unreadable body
	CodeUnauthorized = "unauthorized" // request signing was rejected
)

// QueryError is a transport failure. It carries a code so the caller can
// log which dimension/lookup was being resolved alongside what went wrong.
type QueryError struct {
	Code    string
	Message string
	Query   string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("suiteql: %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("suiteql: %s: %s", e.Code, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// AsQueryError extracts a *QueryError from an error chain, nil if none.
func AsQueryError(err error) *QueryError {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe
	}
	return nil
}
