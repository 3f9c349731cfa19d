package library

import (
	"sort"

	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
)

// Index is a pure, read-only view over one owner's flat folder/file records.
// It is built once per operation from the current collection and answers the
// structure questions the mutation operations validate against: children of,
// ancestors of, is-descendant-of. It never mutates anything.
type Index struct {
	folders      map[string]*models.Folder
	files        map[string]*models.File
	childFolders map[string][]*models.Folder // keyed by parent folder id
	childFiles   map[string][]*models.File
	root         *models.Folder
}

// NewIndex builds an index from flat record slices. Children are ordered by
// name so listings are stable.
func NewIndex(folders []models.Folder, files []models.File) *Index {
	idx := &Index{
		folders:      make(map[string]*models.Folder, len(folders)),
		files:        make(map[string]*models.File, len(files)),
		childFolders: make(map[string][]*models.Folder),
		childFiles:   make(map[string][]*models.File),
	}

	for i := range folders {
		f := &folders[i]
		idx.folders[f.ID] = f
		if f.ParentID == nil {
			idx.root = f
		} else {
			idx.childFolders[*f.ParentID] = append(idx.childFolders[*f.ParentID], f)
		}
	}

	for i := range files {
		f := &files[i]
		idx.files[f.ID] = f
		idx.childFiles[f.FolderID] = append(idx.childFiles[f.FolderID], f)
	}

	for _, children := range idx.childFolders {
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	}
	for _, children := range idx.childFiles {
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	}

	return idx
}

// Root returns the parentless folder, or nil before bootstrap.
func (idx *Index) Root() *models.Folder {
	return idx.root
}

// Folder looks up a folder by id.
func (idx *Index) Folder(id string) (*models.Folder, bool) {
	f, ok := idx.folders[id]
	return f, ok
}

// File looks up a file by id.
func (idx *Index) File(id string) (*models.File, bool) {
	f, ok := idx.files[id]
	return f, ok
}

// FolderCount returns the total number of folders in the index.
func (idx *Index) FolderCount() int {
	return len(idx.folders)
}

// Children returns the direct child folders and files of a folder,
// no recursion.
func (idx *Index) Children(folderID string) ([]*models.Folder, []*models.File) {
	return idx.childFolders[folderID], idx.childFiles[folderID]
}

// IsDescendant walks parent links upward from candidate and reports whether
// ancestor is encountered before the root. candidate == ancestor is NOT a
// descendant relationship; identity is the caller's check.
//
// The walk is bounded by the total folder count: invariants forbid cycles,
// but if corrupted data were ever present the walk fails with
// ErrCorruptedTree instead of looping forever.
func (idx *Index) IsDescendant(candidateID, ancestorID string) (bool, error) {
	current, ok := idx.folders[candidateID]
	if !ok {
		return false, nil
	}

	for steps := 0; current.ParentID != nil; steps++ {
		if steps > len(idx.folders) {
			return false, domain.ErrCorruptedTree
		}
		if *current.ParentID == ancestorID {
			return true, nil
		}
		parent, ok := idx.folders[*current.ParentID]
		if !ok {
			// Dangling parent reference; treat like reaching the top.
			return false, nil
		}
		current = parent
	}

	return false, nil
}

// SubtreeFolderIDs collects the given folder's id plus every descendant
// folder id. The traversal is iterative with an explicit stack so deep or
// wide subtrees cannot exhaust the goroutine stack, and it is bounded by the
// total folder count as a corruption guard.
func (idx *Index) SubtreeFolderIDs(folderID string) ([]string, error) {
	if _, ok := idx.folders[folderID]; !ok {
		return nil, nil
	}

	ids := make([]string, 0, 8)
	stack := []string{folderID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)

		if len(ids) > len(idx.folders) {
			return nil, domain.ErrCorruptedTree
		}

		for _, child := range idx.childFolders[id] {
			stack = append(stack, child.ID)
		}
	}

	return ids, nil
}

// WalkDepthFirst visits every folder root-first depth-first, children in
// name order, calling fn with each folder and its depth below the root.
func (idx *Index) WalkDepthFirst(fn func(f *models.Folder, depth int)) {
	if idx.root == nil {
		return
	}

	type frame struct {
		folder *models.Folder
		depth  int
	}

	stack := []frame{{idx.root, 0}}
	visited := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.folder, top.depth)

		visited++
		if visited > len(idx.folders) {
			return
		}

		children := idx.childFolders[top.folder.ID]
		// Push in reverse so the walk visits children in name order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], top.depth + 1})
		}
	}
}
