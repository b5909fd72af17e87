package model

import (
	"context"
	"time"
)

// Note represents a user-owned note as served by the backend. The backend
// owns the record; the client only holds a cached copy from the last fetch.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput contains the user-editable fields of a note.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// API defines the remote operations the client performs against the notes
// backend. IDs are always server-assigned.
type API interface {
	Register(ctx context.Context, params RegisterParams) error
	Login(ctx context.Context, creds Credentials) (string, error)
	ListNotes(ctx context.Context) ([]Note, error)
	CreateNote(ctx context.Context, input NoteInput) (Note, error)
	UpdateNote(ctx context.Context, id string, input NoteInput) (Note, error)
	DeleteNote(ctx context.Context, id string) error
}
