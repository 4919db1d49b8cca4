package tablegateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"pmaas.io/tablegateway/internal/sqlgen"
)

// Executor is the connection primitive a gateway executes through.  It is
// satisfied by *sqlx.DB and *sqlx.Tx; the gateway neither opens nor closes
// it.
type Executor interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	sqlx.PreparerContext
}

type resultShape int

const (
	shapeRecords resultShape = iota
	shapeScalar
)

// Gateway maps one configured table to Record values and generates the SQL
// for lookup, insert, update and delete.
//
// A gateway holds transient query-building state between SetQuery and the
// finder call that consumes it, so an instance supports at most one in-flight
// operation at a time.  Concurrent use requires per-operation instances or
// external serialization.
type Gateway struct {
	ctx     context.Context
	def     TableDefinition
	exec    Executor
	dialect Dialect
	log     zerolog.Logger
	actorID int64
	now     time.Time

	pendingSQL  string
	pendingArgs []any
	shape       resultShape

	foundRows      int64
	foundRowsKnown bool
}

// New validates the table definition and constructs a gateway over exec.
// The reference time used by Now, Today and the audit columns is sampled
// here, once, so every statement issued through this instance records the
// same timestamp.
func New(ctx context.Context, def TableDefinition, exec Executor, settings Settings) (*Gateway, error) {
	if exec == nil {
		return nil, fmt.Errorf("%w: nil executor", ErrConfig)
	}

	if err := def.validate(); err != nil {
		return nil, err
	}

	clock := settings.Clock

	if clock == nil {
		clock = time.Now
	}

	dialect := Default

	if settings.Dialect != nil {
		dialect = *settings.Dialect
	}

	log := zerolog.Nop()

	if settings.Logger != nil {
		log = *settings.Logger
	}

	return &Gateway{
		ctx:     ctx,
		def:     def,
		exec:    exec,
		dialect: dialect,
		log:     log,
		actorID: settings.ActorID,
		now:     clock(),
	}, nil
}

// NewRecord returns a new, empty row for this table.
func (g *Gateway) NewRecord() Record {
	if g.def.NewRecord != nil {
		return g.def.NewRecord()
	}

	return NewRow(g.def.ColumnTypes)
}

// Now returns the gateway's reference time as a timestamp string.
func (g *Gateway) Now() string {
	return g.now.Format(timestampFormat)
}

// Today returns the gateway's reference time as a date string.
func (g *Gateway) Today() string {
	return g.now.Format(dateFormat)
}

// SetQuery presets the statement the next finder call executes, in place of
// the default table select.  Write placeholders as ? regardless of dialect;
// they are rebound before execution.  The preset is consumed by exactly one
// operation: transient state is cleared after every execution, successful or
// not.
func (g *Gateway) SetQuery(query string, args ...any) {
	g.pendingSQL = query
	g.pendingArgs = args
}

func (g *Gateway) reset() {
	g.pendingSQL = ""
	g.pendingArgs = nil
	g.shape = shapeRecords
}

func (g *Gateway) pendingSelect(withFoundRows bool) (string, []any) {
	if g.pendingSQL != "" {
		return g.pendingSQL, g.pendingArgs
	}

	return sqlgen.Select(g.def.Table, g.def.Alias, withFoundRows), nil
}

// Find executes the pending or default SELECT and returns all matching rows.
// When includeFoundRows is set the default select also computes the total
// matching-row count, retrievable afterwards through FoundRows.
func (g *Gateway) Find(includeFoundRows bool) ([]Record, error) {
	g.foundRowsKnown = false
	query, args := g.pendingSelect(includeFoundRows)
	records, _, err := g.runSelect(query, args)

	return records, err
}

// FindRow executes the pending or default SELECT and returns the first
// matching row, or nil when there is no match.
func (g *Gateway) FindRow() (Record, error) {
	records, err := g.Find(false)

	if err != nil || len(records) == 0 {
		return nil, err
	}

	return records[0], nil
}

// FindByID restricts the pending or default SELECT by primary key and
// returns at most one row, or nil when there is no match.
func (g *Gateway) FindByID(id any) (Record, error) {
	query, args := g.pendingSelect(false)
	query += fmt.Sprintf(" AND %s = ?", g.def.primaryKey())
	args = append(args, id)

	records, _, err := g.runSelect(query, args)

	if err != nil || len(records) == 0 {
		return nil, err
	}

	return records[0], nil
}

// FindScalar executes the pending or default SELECT and returns the first
// column of the first row.
func (g *Gateway) FindScalar() (any, error) {
	g.shape = shapeScalar
	query, args := g.pendingSelect(false)
	_, scalar, err := g.runSelect(query, args)

	return scalar, err
}

// FoundRows returns the total matching-row count computed by the most recent
// Find call.  The count is only known when that call requested it.
func (g *Gateway) FoundRows() (int64, bool) {
	return g.foundRows, g.foundRowsKnown
}

// Save inserts the record when it has no primary key value, else updates it.
func (g *Gateway) Save(record Record) (Record, error) {
	if isEmptyKey(record.Get(g.def.primaryKey())) {
		return g.Insert(record)
	}

	return g.Update(record)
}

// Insert writes the record's modified columns as a new row.  On success the
// record carries the new primary key value and, when audit columns are
// enabled, the audit values actually bound.  A record with no modified
// columns is a no-op: Insert returns (nil, nil) and executes nothing.
func (g *Gateway) Insert(record Record) (Record, error) {
	return g.insert(record, false)
}

// InsertOrIgnore is Insert with the dialect's conflict-ignore clause.  When
// the engine ignores the row no primary key value is assigned.
func (g *Gateway) InsertOrIgnore(record Record) (Record, error) {
	return g.insert(record, true)
}

func (g *Gateway) insert(record Record, ignoreConflict bool) (Record, error) {
	columns, args := g.assignedColumns(record)

	if len(columns) == 0 {
		return nil, nil
	}

	if !g.def.OmitAuditColumns {
		columns = append(columns, ColumnCreatedBy, ColumnCreatedDate, ColumnUpdatedBy, ColumnUpdatedDate)
		args = append(args, g.actorID, g.Now(), g.actorID, g.Now())
	}

	conflictClause := ""

	if ignoreConflict {
		conflictClause = g.dialect.ConflictIgnore
	}

	returning := ""

	if g.dialect.ReturningID {
		returning = g.def.primaryKey()
	}

	query := sqlgen.Insert(g.def.Table, columns, conflictClause, returning)
	id, err := g.runInsert(query, args)

	if err != nil {
		return nil, err
	}

	if id != 0 {
		record.Set(g.def.primaryKey(), id)
	}

	if !g.def.OmitAuditColumns {
		record.Set(ColumnCreatedBy, g.actorID)
		record.Set(ColumnCreatedDate, g.Now())
		record.Set(ColumnUpdatedBy, g.actorID)
		record.Set(ColumnUpdatedDate, g.Now())
	}

	return record, nil
}

// Update writes the record's modified columns to the row identified by its
// primary key value, failing with ErrMissingPrimaryKey when that value is
// empty.  A record with no modified columns is a no-op: Update returns
// (nil, nil) and executes nothing.
func (g *Gateway) Update(record Record) (Record, error) {
	key := record.Get(g.def.primaryKey())

	if isEmptyKey(key) {
		return nil, ErrMissingPrimaryKey
	}

	columns, args := g.assignedColumns(record)

	if len(columns) == 0 {
		return nil, nil
	}

	if !g.def.OmitAuditColumns {
		columns = append(columns, ColumnUpdatedBy, ColumnUpdatedDate)
		args = append(args, g.actorID, g.Now())
	}

	args = append(args, key)
	query := sqlgen.Update(g.def.Table, columns, g.def.primaryKey())

	if _, err := g.runExec(query, args); err != nil {
		return nil, err
	}

	if !g.def.OmitAuditColumns {
		record.Set(ColumnUpdatedBy, g.actorID)
		record.Set(ColumnUpdatedDate, g.Now())
	}

	return record, nil
}

// Delete removes the row identified by the record's primary key value,
// failing with ErrMissingPrimaryKey when that value is empty.  It reports
// whether the engine removed a row.
func (g *Gateway) Delete(record Record) (bool, error) {
	key := record.Get(g.def.primaryKey())

	if isEmptyKey(key) {
		return false, ErrMissingPrimaryKey
	}

	result, err := g.runExec(sqlgen.Delete(g.def.Table, g.def.primaryKey()), []any{key})

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return true, nil
	}

	return affected > 0, nil
}

// assignedColumns collects the subset of ModifiableColumns the record has
// assigned, in declaration order.  The column list and argument list stay in
// lockstep because parameters bind positionally.
func (g *Gateway) assignedColumns(record Record) ([]string, []any) {
	columns := make([]string, 0, len(g.def.ModifiableColumns))
	args := make([]any, 0, len(g.def.ModifiableColumns))

	for _, column := range g.def.ModifiableColumns {
		if !record.IsModified(column) {
			continue
		}

		columns = append(columns, column)
		args = append(args, record.Get(column))
	}

	return columns, args
}

func (g *Gateway) runSelect(query string, args []any) ([]Record, any, error) {
	defer g.reset()

	bound := bindArgs(args)
	query = g.dialect.rebind(query)
	g.log.Debug().Str("sql", query).Interface("args", bound).Msg("executing query")

	stmt, err := sqlx.PreparexContext(g.ctx, g.exec, query)

	if err != nil {
		return nil, nil, g.failQuery(query, bound, err)
	}

	defer stmt.Close()

	rows, err := stmt.QueryxContext(g.ctx, bound...)

	if err != nil {
		return nil, nil, g.failQuery(query, bound, err)
	}

	defer rows.Close()

	if g.shape == shapeScalar {
		scalar, err := scanScalar(rows)

		if err != nil {
			return nil, nil, g.failQuery(query, bound, err)
		}

		return nil, scalar, nil
	}

	records, err := g.hydrate(rows)

	if err != nil {
		return nil, nil, g.failQuery(query, bound, err)
	}

	return records, nil, nil
}

func (g *Gateway) runExec(query string, args []any) (sql.Result, error) {
	defer g.reset()

	bound := bindArgs(args)
	query = g.dialect.rebind(query)
	g.log.Debug().Str("sql", query).Interface("args", bound).Msg("executing statement")

	stmt, err := sqlx.PreparexContext(g.ctx, g.exec, query)

	if err != nil {
		return nil, g.failQuery(query, bound, err)
	}

	defer stmt.Close()

	result, err := stmt.ExecContext(g.ctx, bound...)

	if err != nil {
		return nil, g.failQuery(query, bound, err)
	}

	return result, nil
}

func (g *Gateway) runInsert(query string, args []any) (int64, error) {
	if g.dialect.ReturningID {
		return g.runInsertReturning(query, args)
	}

	result, err := g.runExec(query, args)

	if err != nil {
		return 0, err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// Conflict-ignored insert: LastInsertId would report a stale row.
		return 0, nil
	}

	id, err := result.LastInsertId()

	if err != nil {
		// Driver without LastInsertId support; the row was still written.
		return 0, nil
	}

	return id, nil
}

func (g *Gateway) runInsertReturning(query string, args []any) (int64, error) {
	defer g.reset()

	bound := bindArgs(args)
	query = g.dialect.rebind(query)
	g.log.Debug().Str("sql", query).Interface("args", bound).Msg("executing statement")

	stmt, err := sqlx.PreparexContext(g.ctx, g.exec, query)

	if err != nil {
		return 0, g.failQuery(query, bound, err)
	}

	defer stmt.Close()

	var id int64
	err = stmt.QueryRowxContext(g.ctx, bound...).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		// Conflict-ignored insert: no row came back, no identifier.
		return 0, nil
	}

	if err != nil {
		return 0, g.failQuery(query, bound, err)
	}

	return id, nil
}

func (g *Gateway) hydrate(rows *sqlx.Rows) ([]Record, error) {
	var records []Record

	for rows.Next() {
		values := make(map[string]any)

		if err := rows.MapScan(values); err != nil {
			return nil, err
		}

		if count, ok := values[sqlgen.FoundRowsColumn]; ok {
			g.foundRows = toInt64(count)
			g.foundRowsKnown = true
			delete(values, sqlgen.FoundRowsColumn)
		}

		record := g.NewRecord()
		record.Load(values)
		records = append(records, record)
	}

	return records, rows.Err()
}

func (g *Gateway) failQuery(query string, args []any, err error) error {
	g.log.Error().
		Str("sql", query).
		Interface("args", args).
		Str("detail", driverDetail(err)).
		Msg("query execution failed")

	return &QueryError{Query: query, Args: args, Err: err}
}

func scanScalar(rows *sqlx.Rows) (any, error) {
	if !rows.Next() {
		return nil, rows.Err()
	}

	values, err := rows.SliceScan()

	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, nil
	}

	return values[0], nil
}

func bindArgs(args []any) []any {
	bound := make([]any, len(args))

	for i, arg := range args {
		bound[i] = normalizeArg(arg)
	}

	return bound
}

func isEmptyKey(value any) bool {
	switch v := normalizeArg(value).(type) {
	case nil:
		return true
	case int64:
		return v == 0
	}

	return false
}

func toInt64(value any) int64 {
	if n, ok := coerceInteger(value).(int64); ok {
		return n
	}

	return 0
}
