package repository

import (
	"database/sql"
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/models"
)

// MeasurementRepository handles weight and height records. Both tables keep
// at most one row per calendar date.
type MeasurementRepository struct {
	db database.DBTX
}

// NewMeasurementRepository creates a new measurement repository
func NewMeasurementRepository(db database.DBTX) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// UpsertWeight stores the weight for a date, replacing any existing value
func (r *MeasurementRepository) UpsertWeight(day models.Date, grams int) (*models.Weight, error) {
	query := "INSERT INTO weights (measured_at, weight_grams) VALUES (?, ?)" +
		r.db.GetDialect().UpsertClause("measured_at", "weight_grams")
	if _, err := r.db.Exec(query, day.Time, grams); err != nil {
		return nil, fmt.Errorf("failed to upsert weight: %w", err)
	}
	return r.GetWeightByDate(day)
}

// GetWeight retrieves a weight by ID
func (r *MeasurementRepository) GetWeight(id int64) (*models.Weight, error) {
	return r.getWeight("SELECT id, measured_at, weight_grams FROM weights WHERE id = ?", id)
}

// GetWeightByDate retrieves the weight recorded on a date
func (r *MeasurementRepository) GetWeightByDate(day models.Date) (*models.Weight, error) {
	return r.getWeight("SELECT id, measured_at, weight_grams FROM weights WHERE measured_at = ?", day.Time)
}

func (r *MeasurementRepository) getWeight(query string, arg interface{}) (*models.Weight, error) {
	w, err := scanWeight(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weight: %w", err)
	}
	return w, nil
}

// ListWeights returns weights between two dates, newest first. Zero dates
// leave the range open.
func (r *MeasurementRepository) ListWeights(from, to models.Date) ([]models.Weight, error) {
	query, args := dateRange("SELECT id, measured_at, weight_grams FROM weights", "measured_at", from, to)
	rows, err := r.db.Query(query+" ORDER BY measured_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	weights := []models.Weight{}
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		weights = append(weights, *w)
	}
	return weights, rows.Err()
}

// UpdateWeight overwrites a weight record
func (r *MeasurementRepository) UpdateWeight(w *models.Weight) error {
	query := "UPDATE weights SET measured_at = ?, weight_grams = ? WHERE id = ?"
	if _, err := r.db.Exec(query, w.MeasuredAt.Time, w.WeightGrams, w.ID); err != nil {
		return fmt.Errorf("failed to update weight: %w", err)
	}
	return nil
}

// DeleteWeight removes a weight and reports whether it existed
func (r *MeasurementRepository) DeleteWeight(id int64) (bool, error) {
	return deleteByID(r.db, "weights", id)
}

// InsertWeight stores a weight with its existing ID, used when restoring backups
func (r *MeasurementRepository) InsertWeight(w models.Weight) error {
	query := "INSERT INTO weights (id, measured_at, weight_grams) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, w.ID, w.MeasuredAt.Time, w.WeightGrams); err != nil {
		return fmt.Errorf("failed to insert weight %d: %w", w.ID, err)
	}
	return nil
}

// UpsertHeight stores the height for a date, replacing any existing value
func (r *MeasurementRepository) UpsertHeight(day models.Date, cm float64) (*models.Height, error) {
	query := "INSERT INTO heights (measured_at, height_cm) VALUES (?, ?)" +
		r.db.GetDialect().UpsertClause("measured_at", "height_cm")
	if _, err := r.db.Exec(query, day.Time, cm); err != nil {
		return nil, fmt.Errorf("failed to upsert height: %w", err)
	}
	return r.GetHeightByDate(day)
}

// GetHeight retrieves a height by ID
func (r *MeasurementRepository) GetHeight(id int64) (*models.Height, error) {
	return r.getHeight("SELECT id, measured_at, height_cm FROM heights WHERE id = ?", id)
}

// GetHeightByDate retrieves the height recorded on a date
func (r *MeasurementRepository) GetHeightByDate(day models.Date) (*models.Height, error) {
	return r.getHeight("SELECT id, measured_at, height_cm FROM heights WHERE measured_at = ?", day.Time)
}

func (r *MeasurementRepository) getHeight(query string, arg interface{}) (*models.Height, error) {
	h, err := scanHeight(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get height: %w", err)
	}
	return h, nil
}

// ListHeights returns heights between two dates, newest first
func (r *MeasurementRepository) ListHeights(from, to models.Date) ([]models.Height, error) {
	query, args := dateRange("SELECT id, measured_at, height_cm FROM heights", "measured_at", from, to)
	rows, err := r.db.Query(query+" ORDER BY measured_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query heights: %w", err)
	}
	defer rows.Close()

	heights := []models.Height{}
	for rows.Next() {
		h, err := scanHeight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan height: %w", err)
		}
		heights = append(heights, *h)
	}
	return heights, rows.Err()
}

// UpdateHeight overwrites a height record
func (r *MeasurementRepository) UpdateHeight(h *models.Height) error {
	query := "UPDATE heights SET measured_at = ?, height_cm = ? WHERE id = ?"
	if _, err := r.db.Exec(query, h.MeasuredAt.Time, h.HeightCm, h.ID); err != nil {
		return fmt.Errorf("failed to update height: %w", err)
	}
	return nil
}

// DeleteHeight removes a height and reports whether it existed
func (r *MeasurementRepository) DeleteHeight(id int64) (bool, error) {
	return deleteByID(r.db, "heights", id)
}

// InsertHeight stores a height with its existing ID, used when restoring backups
func (r *MeasurementRepository) InsertHeight(h models.Height) error {
	query := "INSERT INTO heights (id, measured_at, height_cm) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, h.ID, h.MeasuredAt.Time, h.HeightCm); err != nil {
		return fmt.Errorf("failed to insert height %d: %w", h.ID, err)
	}
	return nil
}

func scanWeight(s scanner) (*models.Weight, error) {
	var w models.Weight
	if err := s.Scan(&w.ID, &w.MeasuredAt.Time, &w.WeightGrams); err != nil {
		return nil, err
	}
	w.MeasuredAt = models.NewDate(w.MeasuredAt.Time)
	return &w, nil
}

func scanHeight(s scanner) (*models.Height, error) {
	var h models.Height
	if err := s.Scan(&h.ID, &h.MeasuredAt.Time, &h.HeightCm); err != nil {
		return nil, err
	}
	h.MeasuredAt = models.NewDate(h.MeasuredAt.Time)
	return &h, nil
}

// dateRange appends an inclusive date filter on column to base
func dateRange(base, column string, from, to models.Date) (string, []interface{}) {
	query := base + " WHERE 1 = 1"
	var args []interface{}
	if !from.IsZero() {
		query += " AND " + column + " >= ?"
		args = append(args, from.Time)
	}
	if !to.IsZero() {
		query += " AND " + column + " <= ?"
		args = append(args, to.Time)
	}
	return query, args
}
