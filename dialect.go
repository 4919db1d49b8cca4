package tablegateway

import "github.com/jmoiron/sqlx"

// Dialect captures the per-engine differences in generated statements.
// Statements are assembled with ? placeholders and rebound to the dialect's
// bind type through sqlx.Rebind.
type Dialect struct {
	// Bind is the placeholder style, one of the sqlx bind type constants.
	Bind int
	// ReturningID appends "RETURNING <pk>" to inserts and scans the new
	// identifier from the result row, for engines whose drivers do not
	// implement LastInsertId.
	ReturningID bool
	// ConflictIgnore is the clause appended to an insert-or-ignore
	// statement.
	ConflictIgnore string
}

var (
	// Default targets engines that keep ? placeholders and report the last
	// inserted identifier through the driver, such as SQLite and MySQL.
	Default = Dialect{
		Bind:           sqlx.QUESTION,
		ConflictIgnore: "ON CONFLICT DO NOTHING",
	}

	// Postgres uses $n placeholders and RETURNING, since lib/pq does not
	// support LastInsertId.
	Postgres = Dialect{
		Bind:           sqlx.DOLLAR,
		ReturningID:    true,
		ConflictIgnore: "ON CONFLICT DO NOTHING",
	}
)

func (d Dialect) rebind(query string) string {
	return sqlx.Rebind(d.Bind, query)
}
