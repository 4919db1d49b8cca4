package tablegateway

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrConfig wraps every configuration failure detected at construction
	// time: missing table name, empty column list, nil executor.
	ErrConfig = errors.New("tablegateway: invalid configuration")

	// ErrMissingPrimaryKey is returned when update or delete is attempted on
	// a row without a primary key value.  No statement is executed.
	ErrMissingPrimaryKey = errors.New("tablegateway: row has no primary key value")
)

// QueryError reports a statement the driver failed to execute.  The failed
// SQL text and bound arguments are retained for diagnosis.
type QueryError struct {
	Query string
	Args  []any
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("tablegateway: query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// driverDetail extracts driver-specific diagnostic detail from an execution
// error.  lib/pq errors carry a SQLSTATE code worth surfacing in logs.
func driverDetail(err error) string {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%s: %s", pqErr.Code, pqErr.Message)
	}

	return err.Error()
}
