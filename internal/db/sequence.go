package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResyncSequence moves a postgres serial sequence past the largest id in the table so the next
// insert cannot collide with rows loaded with explicit ids. MySQL and SQLite auto-increment
// counters already track the maximum, so nothing is done there.
func ResyncSequence(tx *gorm.DB, table, column string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	col := clause.Column{Name: column}
	return tx.Exec(
		"SELECT setval(pg_get_serial_sequence(?, ?), COALESCE(MAX(?), 1), MAX(?) IS NOT NULL) FROM ?",
		table, column, col, col, clause.Table{Name: table},
	).Error
}
