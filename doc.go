// Package tablegateway maps one configured database table to a mutable row
// value and generates the SQL for single-row lookup, filtered multi-row
// lookup, insert, update and delete without hand-written statements per
// table.
//
// A Gateway is configured once with a TableDefinition and an Executor
// (typically a *sqlx.DB) and then issues Record values:
//
//	def := tablegateway.TableDefinition{
//		Table:             "posts",
//		ModifiableColumns: []string{"title", "body"},
//		ColumnTypes: map[string]tablegateway.ColumnType{
//			"id":    tablegateway.TypeInteger,
//			"title": tablegateway.TypeString,
//			"body":  tablegateway.TypeString,
//		},
//	}
//
//	posts, err := tablegateway.New(ctx, def, db, tablegateway.Settings{ActorID: 42})
//	if err != nil {
//		return err
//	}
//
//	row := posts.NewRecord()
//	row.Set("title", "Hello")
//	row, err = posts.Insert(row)
//
// Insert and update statements cover exactly the columns the record has
// assigned, in TableDefinition.ModifiableColumns order.  Audit columns
// (created_by, created_date, updated_by, updated_date) are maintained
// automatically unless disabled.
//
// Custom filtered queries reuse the gateway's result mapping:
//
//	posts.SetQuery("SELECT posts.* FROM posts WHERE 1 = 1 AND title LIKE ?", "H%")
//	rows, err := posts.Find(false)
package tablegateway
