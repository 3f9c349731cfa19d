package library

import (
	"time"

	"satchel/internal/httputil"
)

type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = the root folder
	Name      string    `json:"name" db:"name"`
	ColorTag  *string   `json:"color_tag,omitempty" db:"color_tag"` // cosmetic only, no structural meaning
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether this folder anchors the tree.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

type CreateFolderRequest struct {
	OwnerID  string `json:"-"`
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
}

// UpdateFolderRequest carries a rename, a recolor, a move, or any combination.
// ParentID uses tri-state semantics: absent = keep location, value = move.
// ColorTag: null clears the tag.
type UpdateFolderRequest struct {
	OwnerID  string                  `json:"-"`
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id,omitempty"`
	ColorTag httputil.OptionalString `json:"color_tag,omitempty"`
}
