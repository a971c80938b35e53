package repository

import (
	"database/sql"
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func deleteByID(db database.DBTX, table string, id int64) (bool, error) {
	result, err := db.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func nullDate(d *models.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time
}

func dateFromNull(t sql.NullTime) *models.Date {
	if !t.Valid {
		return nil
	}
	d := models.NewDate(t.Time)
	return &d
}

// ClearAll deletes every row of the user data tables, children first. The
// recommendations table is derived data and stays.
func ClearAll(db database.DBTX) error {
	for _, table := range []string{"feeds", "weights", "heights", "notes", "teeth", "app_config"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
