// Package sqlgen assembles the statement text the gateway executes.  All
// statements use ? placeholders; the caller rebinds them to the target
// engine's style.
package sqlgen

import "fmt"

// FoundRowsColumn is the synthetic column carrying the total matching-row
// count when a SELECT requests it.
const FoundRowsColumn = "_found_rows"

// Insert builds an insert over the given columns in order.  conflictIgnore
// and returning are appended verbatim when non-empty.
func Insert(table string, columns []string, conflictIgnore string, returning string) string {
	names := ""
	values := ""

	for i, column := range columns {
		if i > 0 {
			names += ", "
			values += ", "
		}

		names += column
		values += "?"
	}

	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, names, values)

	if conflictIgnore != "" {
		statement += " " + conflictIgnore
	}

	if returning != "" {
		statement += " RETURNING " + returning
	}

	return statement
}

// Update builds an update over the given columns in order, restricted to one
// row by primary key.  The primary key placeholder is last.
func Update(table string, columns []string, primaryKey string) string {
	assignments := ""

	for i, column := range columns {
		if i > 0 {
			assignments += ", "
		}

		assignments += column + " = ?"
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, assignments, primaryKey)
}

// Delete builds a single-row delete restricted by primary key.
func Delete(table string, primaryKey string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, primaryKey)
}

// Select builds the default full-table select.  The predicate base is always
// true so callers can append further conditions with AND.  When withFoundRows
// is set the statement also computes the total matching-row count as
// FoundRowsColumn.
func Select(table string, alias string, withFoundRows bool) string {
	prefix := table

	if alias != "" {
		prefix = alias
	}

	columns := prefix + ".*"

	if withFoundRows {
		columns += fmt.Sprintf(", COUNT(*) OVER () AS %s", FoundRowsColumn)
	}

	from := table

	if alias != "" {
		from += " " + alias
	}

	return fmt.Sprintf("SELECT %s FROM %s WHERE 1 = 1", columns, from)
}
