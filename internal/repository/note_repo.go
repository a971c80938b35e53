package repository

import (
	"database/sql"
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/models"
)

// NoteRepository handles database operations for notes
type NoteRepository struct {
	db database.DBTX
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db database.DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a note
func (r *NoteRepository) Create(day models.Date, title, text string) (*models.Note, error) {
	query := "INSERT INTO notes (note_date, title, body) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, day.Time, title, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &models.Note{ID: id, NoteDate: day, Title: title, Text: text}, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(id int64) (*models.Note, error) {
	query := "SELECT id, note_date, title, body FROM notes WHERE id = ?"
	note, err := scanNote(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// List returns notes between two dates, newest first
func (r *NoteRepository) List(from, to models.Date) ([]models.Note, error) {
	query, args := dateRange("SELECT id, note_date, title, body FROM notes", "note_date", from, to)
	rows, err := r.db.Query(query+" ORDER BY note_date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

// Update overwrites a note
func (r *NoteRepository) Update(note *models.Note) error {
	query := "UPDATE notes SET note_date = ?, title = ?, body = ? WHERE id = ?"
	if _, err := r.db.Exec(query, note.NoteDate.Time, note.Title, note.Text, note.ID); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

// Delete removes a note and reports whether it existed
func (r *NoteRepository) Delete(id int64) (bool, error) {
	return deleteByID(r.db, "notes", id)
}

// Insert stores a note with its existing ID, used when restoring backups
func (r *NoteRepository) Insert(note models.Note) error {
	query := "INSERT INTO notes (id, note_date, title, body) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, note.ID, note.NoteDate.Time, note.Title, note.Text); err != nil {
		return fmt.Errorf("failed to insert note %d: %w", note.ID, err)
	}
	return nil
}

func scanNote(s scanner) (*models.Note, error) {
	var note models.Note
	if err := s.Scan(&note.ID, &note.NoteDate.Time, &note.Title, &note.Text); err != nil {
		return nil, err
	}
	note.NoteDate = models.NewDate(note.NoteDate.Time)
	return &note, nil
}
