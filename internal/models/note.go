package models

// Note is a free-form daily entry (vaccinations, milestones, ...)
type Note struct {
	ID       int64  `json:"id"`
	NoteDate Date   `json:"noteDate"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}
