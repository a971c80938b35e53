package handlers

import (
	"net/http"

	"webbaby/internal/service"
)

// NoteHandler serves the daily notes
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// ListNotes returns notes in the optional date range, newest first
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	notes, err := h.noteService.List(from, to)
	if err != nil {
		respondServiceError(w, "Error listing notes", err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

// CreateNote stores a new note
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var in service.NoteInput
	if !decodeJSON(w, r, &in) {
		return
	}

	note, err := h.noteService.Create(in)
	if err != nil {
		respondServiceError(w, "Error creating note", err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// UpdateNote applies a partial update to a note
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.NotePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	note, err := h.noteService.Update(id, patch)
	if err != nil {
		respondServiceError(w, "Error updating note", err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// DeleteNote removes a note
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.noteService.Delete(id); err != nil {
		respondServiceError(w, "Error deleting note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
