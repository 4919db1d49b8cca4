package tablegateway

// Record is the row representation a Gateway reads and writes.  The default
// implementation is Row; a table can substitute its own type through
// TableDefinition.NewRecord.
type Record interface {
	// Get returns the value of a column, or nil when the column was never
	// assigned.
	Get(name string) any
	// Set assigns a column value and marks the column modified.
	Set(name string, value any)
	// IsModified reports whether the column was assigned through Set since
	// construction.  Only modified columns participate in insert and update
	// statements.
	IsModified(name string) bool
	// Load bulk-assigns column values from a storage row.  Loaded columns
	// are not marked modified: they represent the row as currently
	// persisted.
	Load(values map[string]any)
}

// Row is a mutable property bag backed by the table's declared column types.
// Every assignment path runs through Coerce.
type Row struct {
	types    map[string]ColumnType
	values   map[string]any
	modified map[string]struct{}
}

func NewRow(types map[string]ColumnType) *Row {
	return &Row{
		types:    types,
		values:   make(map[string]any),
		modified: make(map[string]struct{}),
	}
}

func (r *Row) Get(name string) any {
	return r.values[name]
}

func (r *Row) Set(name string, value any) {
	r.values[name] = Coerce(r.types[name], value)
	r.modified[name] = struct{}{}
}

func (r *Row) IsModified(name string) bool {
	_, ok := r.modified[name]
	return ok
}

func (r *Row) Load(values map[string]any) {
	for name, value := range values {
		r.values[name] = Coerce(r.types[name], value)
	}
}

// Values returns a copy of the current column values.
func (r *Row) Values() map[string]any {
	values := make(map[string]any, len(r.values))

	for name, value := range r.values {
		values[name] = value
	}

	return values
}
