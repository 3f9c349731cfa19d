package library

// ItemKind distinguishes the two record shapes in drag payloads, selections
// and bulk reports.
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindFile   ItemKind = "file"
)

// Item is the decoded form of a drag-and-drop payload: what is being dragged.
// Encoding into a platform payload is the UI collaborator's job.
type Item struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// Selection is a multi-item pick for bulk move/delete.
type Selection struct {
	FolderIDs []string `json:"folder_ids"`
	FileIDs   []string `json:"file_ids"`
}

// Count is the number of selected items; it gates whether bulk operations
// are enabled.
func (s Selection) Count() int {
	return len(s.FolderIDs) + len(s.FileIDs)
}

// SkippedItem records one selection member a bulk operation refused, with the
// reason. Bulk operations are best-effort: one rejected member never aborts
// the batch.
type SkippedItem struct {
	Item   Item   `json:"item"`
	Reason string `json:"reason"`
}

// BulkReport is the outcome of a bulk move or delete.
type BulkReport struct {
	Applied []Item        `json:"applied"`
	Skipped []SkippedItem `json:"skipped"`
}
