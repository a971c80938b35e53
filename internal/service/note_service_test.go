package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbaby/internal/models"
	"webbaby/internal/validation"
)

type fakeNoteStore struct {
	nextID int64
	notes  map[int64]models.Note
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[int64]models.Note)}
}

func (f *fakeNoteStore) Create(day models.Date, title, text string) (*models.Note, error) {
	f.nextID++
	n := models.Note{ID: f.nextID, NoteDate: day, Title: title, Text: text}
	f.notes[n.ID] = n
	return &n, nil
}

func (f *fakeNoteStore) GetByID(id int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (f *fakeNoteStore) List(from, to models.Date) ([]models.Note, error) {
	out := []models.Note{}
	for _, n := range f.notes {
		if inRange(n.NoteDate, from, to) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) Update(note *models.Note) error {
	f.notes[note.ID] = *note
	return nil
}

func (f *fakeNoteStore) Delete(id int64) (bool, error) {
	if _, ok := f.notes[id]; !ok {
		return false, nil
	}
	delete(f.notes, id)
	return true, nil
}

func TestNoteService(t *testing.T) {
	s := NewNoteService(newFakeNoteStore())

	_, err := s.Create(NoteInput{Title: "No date"})
	var verr validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "noteDate & title required", verr.Message)

	_, err = s.Create(NoteInput{NoteDate: mustDate("2024-05-01"), Title: "   "})
	assert.Error(t, err)

	note, err := s.Create(NoteInput{NoteDate: mustDate("2024-05-01"), Title: "  Vaccination ", Text: "6-in-1"})
	require.NoError(t, err)
	assert.Equal(t, "Vaccination", note.Title)

	// A blank title keeps the stored one; text may be emptied
	updated, err := s.Update(note.ID, NotePatch{Title: strPtr(" "), Text: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Vaccination", updated.Title)
	assert.Equal(t, "", updated.Text)

	day := mustDate("2024-05-02")
	updated, err = s.Update(note.ID, NotePatch{NoteDate: &day, Title: strPtr("Second dose")})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", updated.NoteDate.String())
	assert.Equal(t, "Second dose", updated.Title)

	_, err = s.Update(42, NotePatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(note.ID))
	assert.ErrorIs(t, s.Delete(note.ID), ErrNotFound)
}
