package library

import (
	"time"
)

// File is a document record attached to exactly one folder. The payload is an
// opaque blob; this core never interprets it.
type File struct {
	ID       string `json:"id" db:"id"`
	OwnerID  string `json:"owner_id" db:"owner_id"`
	FolderID string `json:"folder_id" db:"folder_id"` // never NULL - every file belongs to a folder
	Name     string `json:"name" db:"name"`
	Payload  []byte `json:"-" db:"payload"`

	// SubjectRef and UnitRef are weak back-references to entities owned by
	// other subsystems. They are stored and nullified here, never validated
	// beyond assignment time and never part of tree invariants.
	SubjectRef *string `json:"subject_ref,omitempty" db:"subject_ref"`
	UnitRef    *string `json:"unit_ref,omitempty" db:"unit_ref"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateFileRequest struct {
	OwnerID  string `json:"-"`
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
	Payload  []byte `json:"payload,omitempty"`
}

type UpdateFileRequest struct {
	OwnerID  string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	FolderID *string `json:"folder_id,omitempty"` // move file to another folder
}

// LinkRequest assigns or replaces a weak reference on a file.
type LinkRequest struct {
	OwnerID string `json:"-"`
	Ref     string `json:"ref"`
}
