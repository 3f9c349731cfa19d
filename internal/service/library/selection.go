package library

import (
	"sort"
	"sync"

	models "satchel/internal/domain/models/library"
)

// SelectionController tracks the folder and file ids picked for a bulk
// operation. It is an explicit object handed to whichever component needs it,
// never ambient state. Entering select mode clears any previous pick,
// toggling flips one member, exiting clears again. The count gates whether
// bulk operations are enabled.
type SelectionController struct {
	mu      sync.Mutex
	active  bool
	folders map[string]struct{}
	files   map[string]struct{}
}

// NewSelectionController creates an inactive, empty controller.
func NewSelectionController() *SelectionController {
	return &SelectionController{
		folders: make(map[string]struct{}),
		files:   make(map[string]struct{}),
	}
}

// Enter starts select mode with an empty selection.
func (c *SelectionController) Enter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.folders = make(map[string]struct{})
	c.files = make(map[string]struct{})
}

// Exit leaves select mode and clears the selection.
func (c *SelectionController) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.folders = make(map[string]struct{})
	c.files = make(map[string]struct{})
}

// Active reports whether select mode is on.
func (c *SelectionController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// ToggleFolder adds the folder if absent, removes it if present.
// Returns whether the folder is selected after the call.
func (c *SelectionController) ToggleFolder(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggle(c.folders, id)
}

// ToggleFile adds the file if absent, removes it if present.
// Returns whether the file is selected after the call.
func (c *SelectionController) ToggleFile(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggle(c.files, id)
}

// Count is the total number of selected items.
func (c *SelectionController) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.folders) + len(c.files)
}

// Selection snapshots the current pick in a stable order.
func (c *SelectionController) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()

	sel := models.Selection{
		FolderIDs: make([]string, 0, len(c.folders)),
		FileIDs:   make([]string, 0, len(c.files)),
	}
	for id := range c.folders {
		sel.FolderIDs = append(sel.FolderIDs, id)
	}
	for id := range c.files {
		sel.FileIDs = append(sel.FileIDs, id)
	}
	sort.Strings(sel.FolderIDs)
	sort.Strings(sel.FileIDs)
	return sel
}

func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}
