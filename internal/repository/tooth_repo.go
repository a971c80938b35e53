package repository

import (
	"database/sql"
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/models"
)

// ToothRepository handles database operations for teeth
type ToothRepository struct {
	db database.DBTX
}

// NewToothRepository creates a new tooth repository
func NewToothRepository(db database.DBTX) *ToothRepository {
	return &ToothRepository{db: db}
}

// Upsert records the appearance date of a tooth, creating the row if needed
func (r *ToothRepository) Upsert(code string, appearedAt *models.Date) (*models.Tooth, error) {
	query := "INSERT INTO teeth (tooth_code, appeared_at) VALUES (?, ?)" +
		r.db.GetDialect().UpsertClause("tooth_code", "appeared_at")
	if _, err := r.db.Exec(query, code, nullDate(appearedAt)); err != nil {
		return nil, fmt.Errorf("failed to upsert tooth: %w", err)
	}
	return r.GetByCode(code)
}

// GetByID retrieves a tooth by ID
func (r *ToothRepository) GetByID(id int64) (*models.Tooth, error) {
	return r.get("SELECT id, tooth_code, appeared_at FROM teeth WHERE id = ?", id)
}

// GetByCode retrieves a tooth by its code
func (r *ToothRepository) GetByCode(code string) (*models.Tooth, error) {
	return r.get("SELECT id, tooth_code, appeared_at FROM teeth WHERE tooth_code = ?", code)
}

func (r *ToothRepository) get(query string, arg interface{}) (*models.Tooth, error) {
	tooth, err := scanTooth(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tooth: %w", err)
	}
	return tooth, nil
}

// List returns all teeth ordered by code
func (r *ToothRepository) List() ([]models.Tooth, error) {
	rows, err := r.db.Query("SELECT id, tooth_code, appeared_at FROM teeth ORDER BY tooth_code ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query teeth: %w", err)
	}
	defer rows.Close()

	teeth := []models.Tooth{}
	for rows.Next() {
		tooth, err := scanTooth(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tooth: %w", err)
		}
		teeth = append(teeth, *tooth)
	}
	return teeth, rows.Err()
}

// Update overwrites a tooth
func (r *ToothRepository) Update(tooth *models.Tooth) error {
	query := "UPDATE teeth SET tooth_code = ?, appeared_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, tooth.ToothCode, nullDate(tooth.AppearedAt), tooth.ID); err != nil {
		return fmt.Errorf("failed to update tooth: %w", err)
	}
	return nil
}

// Delete removes a tooth and reports whether it existed
func (r *ToothRepository) Delete(id int64) (bool, error) {
	return deleteByID(r.db, "teeth", id)
}

// Insert stores a tooth with its existing ID, used when restoring backups
func (r *ToothRepository) Insert(tooth models.Tooth) error {
	query := "INSERT INTO teeth (id, tooth_code, appeared_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, tooth.ID, tooth.ToothCode, nullDate(tooth.AppearedAt)); err != nil {
		return fmt.Errorf("failed to insert tooth %d: %w", tooth.ID, err)
	}
	return nil
}

func scanTooth(s scanner) (*models.Tooth, error) {
	var (
		tooth      models.Tooth
		appearedAt sql.NullTime
	)
	if err := s.Scan(&tooth.ID, &tooth.ToothCode, &appearedAt); err != nil {
		return nil, err
	}
	tooth.AppearedAt = dateFromNull(appearedAt)
	return &tooth, nil
}
