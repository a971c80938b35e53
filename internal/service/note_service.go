package service

import (
	"strings"

	"webbaby/internal/models"
	"webbaby/internal/validation"
)

// NoteStore is the persistence NoteService needs
type NoteStore interface {
	Create(day models.Date, title, text string) (*models.Note, error)
	GetByID(id int64) (*models.Note, error)
	List(from, to models.Date) ([]models.Note, error)
	Update(note *models.Note) error
	Delete(id int64) (bool, error)
}

// NoteInput is the body of a note create request
type NoteInput struct {
	NoteDate models.Date `json:"noteDate"`
	Title    string      `json:"title"`
	Text     string      `json:"text"`
}

// NotePatch is the body of a note update request. A nil or blank title keeps
// the stored one.
type NotePatch struct {
	NoteDate *models.Date `json:"noteDate"`
	Title    *string      `json:"title"`
	Text     *string      `json:"text"`
}

// NoteService handles the daily notes
type NoteService struct {
	notes NoteStore
}

// NewNoteService creates a new note service
func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

// Create stores a new note
func (s *NoteService) Create(in NoteInput) (*models.Note, error) {
	title, err := validation.ValidateNote(in.NoteDate, in.Title)
	if err != nil {
		return nil, err
	}
	return s.notes.Create(in.NoteDate, title, in.Text)
}

// List returns notes between from and to, newest first
func (s *NoteService) List(from, to models.Date) ([]models.Note, error) {
	return s.notes.List(from, to)
}

// Update applies a partial update to a note
func (s *NoteService) Update(id int64, patch NotePatch) (*models.Note, error) {
	note, err := s.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}

	day := note.NoteDate
	if patch.NoteDate != nil {
		day = *patch.NoteDate
	}
	title := note.Title
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		title = *patch.Title
	}
	title, err = validation.ValidateNote(day, title)
	if err != nil {
		return nil, err
	}

	note.NoteDate = day
	note.Title = title
	if patch.Text != nil {
		note.Text = *patch.Text
	}

	if err := s.notes.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note
func (s *NoteService) Delete(id int64) error {
	deleted, err := s.notes.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
