package library

import "time"

// TreeNode represents the root of the library tree.
type TreeNode struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []FileTreeNode    `json:"files"`
}

// FolderTreeNode represents a folder in the tree with nested children.
type FolderTreeNode struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ParentID  *string           `json:"parent_id"`
	ColorTag  *string           `json:"color_tag,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Folders   []*FolderTreeNode `json:"folders"` // Pointers for proper nesting
	Files     []FileTreeNode    `json:"files"`
}

// FileTreeNode represents a file in the tree (metadata only, no payload).
type FileTreeNode struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FolderID   string    `json:"folder_id"`
	SubjectRef *string   `json:"subject_ref,omitempty"`
	UnitRef    *string   `json:"unit_ref,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Destination is one row of the move-destination listing: every folder,
// root-first depth-first, annotated with whether it is a legal target for the
// move in progress. Presentation layers disable the rows marked Disabled.
type Destination struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Depth    int    `json:"depth"`
	Disabled bool   `json:"disabled"`
}

// FolderContents holds the direct children of one folder, no recursion.
type FolderContents struct {
	Folder  *Folder  `json:"folder,omitempty"`
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// SearchResults holds a whole-tree name search. Active is false when the
// query was blank, meaning no filtering took place.
type SearchResults struct {
	Active  bool     `json:"active"`
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}
