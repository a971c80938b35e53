package database

import (
	"fmt"
	"log"

	"webbaby/internal/growth"
)

// SeedRecommendations upserts the age-only feeding table so the stored rows
// always match the values the application computes
func (db *DB) SeedRecommendations() error {
	rows := growth.GenericTable()

	query := "INSERT INTO recommendations (age_days, total_ml, meals_per_day, per_meal_ml) VALUES (?, ?, ?, ?)" +
		db.Dialect.UpsertClause("age_days", "total_ml", "meals_per_day", "per_meal_ml")

	err := db.WithTx(func(tx *Tx) error {
		stmt, err := tx.Prepare(db.Dialect.RewriteQuery(query))
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.Exec(row.AgeDays, row.TotalMl, row.MealsPerDay, row.PerMealMl); err != nil {
				return fmt.Errorf("failed to upsert recommendation for day %d: %w", row.AgeDays, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Recommendations table seeded with %d rows", len(rows))
	return nil
}
