package tablegateway

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Audit column names.  When a table carries audit columns they are maintained
// by the gateway and must not appear in ModifiableColumns.
const (
	ColumnCreatedBy   = "created_by"
	ColumnCreatedDate = "created_date"
	ColumnUpdatedBy   = "updated_by"
	ColumnUpdatedDate = "updated_date"
)

const (
	timestampFormat = "2006-01-02 15:04:05"
	dateFormat      = "2006-01-02"
)

// TableDefinition is the structural configuration of one table.  It is
// supplied once per gateway and validated at construction time.
type TableDefinition struct {
	// Table is the table name.  Required.
	Table string
	// Alias optionally aliases the table in generated SELECT statements.
	Alias string
	// PrimaryKey is the primary key column, "id" when blank.
	PrimaryKey string
	// ModifiableColumns is the exact list and order of columns eligible for
	// insert and update.  Required, and must exclude the primary key and the
	// audit columns.
	ModifiableColumns []string
	// ColumnTypes declares the scalar type of each column for coercion.
	// Columns absent from the map store values unmodified.
	ColumnTypes map[string]ColumnType
	// NewRecord produces row instances for this table.  Defaults to a Row
	// over ColumnTypes.
	NewRecord func() Record
	// OmitAuditColumns disables maintenance of the created_by/created_date/
	// updated_by/updated_date columns.  The zero value keeps them enabled.
	OmitAuditColumns bool
}

func (d *TableDefinition) validate() error {
	if d.Table == "" {
		return fmt.Errorf("%w: table name is required", ErrConfig)
	}

	if len(d.ModifiableColumns) == 0 {
		return fmt.Errorf("%w: table %s has no modifiable columns", ErrConfig, d.Table)
	}

	pk := d.primaryKey()

	for _, column := range d.ModifiableColumns {
		if column == pk {
			return fmt.Errorf("%w: primary key %s listed as modifiable column", ErrConfig, pk)
		}

		if !d.OmitAuditColumns && isAuditColumn(column) {
			return fmt.Errorf("%w: audit column %s listed as modifiable column", ErrConfig, column)
		}
	}

	return nil
}

func (d *TableDefinition) primaryKey() string {
	if d.PrimaryKey == "" {
		return "id"
	}

	return d.PrimaryKey
}

func isAuditColumn(name string) bool {
	switch name {
	case ColumnCreatedBy, ColumnCreatedDate, ColumnUpdatedBy, ColumnUpdatedDate:
		return true
	}

	return false
}

// Settings carries the optional collaborators of a gateway.
type Settings struct {
	// Logger receives statement debug entries and execution failures.  Nil
	// disables logging.
	Logger *zerolog.Logger
	// ActorID identifies the session actor recorded in audit columns.
	ActorID int64
	// Clock supplies the gateway's reference time, sampled once at
	// construction.  Defaults to time.Now.
	Clock func() time.Time
	// Dialect overrides SQL dialect selection.  Defaults to Default.
	Dialect *Dialect
}
