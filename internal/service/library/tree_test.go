package library

import (
	"context"
	"testing"

	models "satchel/internal/domain/models/library"
)

func TestGetTreeNesting(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	parent := env.mustCreateFolder(t, owner, root.ID, "Parent")
	env.mustCreateFolder(t, owner, parent.ID, "Child")
	env.mustCreateFile(t, owner, root.ID, "top.txt")
	env.mustCreateFile(t, owner, parent.ID, "nested.txt")

	tree, err := env.tree.GetTree(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}

	if len(tree.Folders) != 1 {
		t.Fatalf("top-level folders = %d, want 1 (the root)", len(tree.Folders))
	}
	rootNode := tree.Folders[0]
	if rootNode.ID != root.ID {
		t.Errorf("root node = %s, want %s", rootNode.ID, root.ID)
	}
	if len(rootNode.Files) != 1 || rootNode.Files[0].Name != "top.txt" {
		t.Errorf("root files = %v, want top.txt", rootNode.Files)
	}

	if len(rootNode.Folders) != 1 {
		t.Fatalf("root children = %d, want 1", len(rootNode.Folders))
	}
	parentNode := rootNode.Folders[0]
	if parentNode.ID != parent.ID {
		t.Errorf("child node = %s, want %s", parentNode.ID, parent.ID)
	}
	if len(parentNode.Files) != 1 || parentNode.Files[0].Name != "nested.txt" {
		t.Errorf("nested files = %v, want nested.txt", parentNode.Files)
	}
	if len(parentNode.Folders) != 1 || parentNode.Folders[0].Name != "Child" {
		t.Errorf("grandchildren = %v, want Child", parentNode.Folders)
	}
}

func TestGetTreeEmptyLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.mustRoot(t, owner)

	tree, err := env.tree.GetTree(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if len(tree.Folders) != 1 {
		t.Fatalf("folders = %d, want just the root", len(tree.Folders))
	}
	if len(tree.Folders[0].Folders) != 0 || len(tree.Folders[0].Files) != 0 {
		t.Errorf("fresh root is not empty: %+v", tree.Folders[0])
	}
}

func TestListDestinationsDisablesMovedSubtree(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	moving := env.mustCreateFolder(t, owner, root.ID, "Moving")
	inside := env.mustCreateFolder(t, owner, moving.ID, "Inside")
	elsewhere := env.mustCreateFolder(t, owner, root.ID, "Elsewhere")

	destinations, err := env.tree.ListDestinations(context.Background(), owner, &models.Item{
		Kind: models.KindFolder,
		ID:   moving.ID,
	})
	if err != nil {
		t.Fatalf("ListDestinations() error = %v", err)
	}

	disabled := make(map[string]bool, len(destinations))
	depths := make(map[string]int, len(destinations))
	for _, d := range destinations {
		disabled[d.ID] = d.Disabled
		depths[d.ID] = d.Depth
	}

	if len(destinations) != 4 {
		t.Fatalf("destinations = %d, want every folder listed", len(destinations))
	}
	if disabled[root.ID] || disabled[elsewhere.ID] {
		t.Error("folders outside the moved subtree are disabled")
	}
	if !disabled[moving.ID] || !disabled[inside.ID] {
		t.Error("moved folder or its descendant is enabled")
	}

	if depths[root.ID] != 0 || depths[moving.ID] != 1 || depths[inside.ID] != 2 {
		t.Errorf("depths = %v, want root=0 moving=1 inside=2", depths)
	}

	// Root comes first in a root-first depth-first walk.
	if destinations[0].ID != root.ID {
		t.Errorf("first destination = %s, want root", destinations[0].ID)
	}
}

func TestListDestinationsFileMoveDisablesNothing(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	env.mustCreateFolder(t, owner, root.ID, "A")
	file := env.mustCreateFile(t, owner, root.ID, "doc.txt")

	destinations, err := env.tree.ListDestinations(context.Background(), owner, &models.Item{
		Kind: models.KindFile,
		ID:   file.ID,
	})
	if err != nil {
		t.Fatalf("ListDestinations() error = %v", err)
	}

	for _, d := range destinations {
		if d.Disabled {
			t.Errorf("destination %s disabled during file move", d.Name)
		}
	}
}

func TestListDestinationsNoMoveInProgress(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	env.mustCreateFolder(t, owner, root.ID, "A")

	destinations, err := env.tree.ListDestinations(context.Background(), owner, nil)
	if err != nil {
		t.Fatalf("ListDestinations() error = %v", err)
	}
	if len(destinations) != 2 {
		t.Fatalf("destinations = %d, want 2", len(destinations))
	}
	for _, d := range destinations {
		if d.Disabled {
			t.Errorf("destination %s disabled with no move in progress", d.Name)
		}
	}
}
