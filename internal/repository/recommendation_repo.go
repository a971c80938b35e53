package repository

import (
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/growth"
)

// RecommendationRepository reads the seeded age-only feeding table
type RecommendationRepository struct {
	db database.DBTX
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db database.DBTX) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// List returns every stored row ordered by age
func (r *RecommendationRepository) List() ([]growth.GenericRow, error) {
	rows, err := r.db.Query("SELECT age_days, total_ml, meals_per_day, per_meal_ml FROM recommendations ORDER BY age_days ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var result []growth.GenericRow
	for rows.Next() {
		var row growth.GenericRow
		if err := rows.Scan(&row.AgeDays, &row.TotalMl, &row.MealsPerDay, &row.PerMealMl); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
