package library

import (
	"context"
	"testing"
)

func TestSearchMatchesSubstringCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	env.mustCreateFolder(t, owner, root.ID, "Catalog")
	env.mustCreateFolder(t, owner, root.ID, "Dog photos")
	env.mustCreateFile(t, owner, root.ID, "scatter.pdf")
	env.mustCreateFile(t, owner, root.ID, "dogs.txt")

	results, err := env.search.Search(context.Background(), owner, "CAT")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if !results.Active {
		t.Error("Active = false, want true for non-blank query")
	}
	if len(results.Folders) != 1 || results.Folders[0].Name != "Catalog" {
		t.Errorf("Folders = %v, want only Catalog", results.Folders)
	}
	if len(results.Files) != 1 || results.Files[0].Name != "scatter.pdf" {
		t.Errorf("Files = %v, want only scatter.pdf", results.Files)
	}
}

func TestSearchBlankQueryInactive(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	env.mustCreateFolder(t, owner, root.ID, "Anything")

	for _, query := range []string{"", "   ", "\t"} {
		results, err := env.search.Search(context.Background(), owner, query)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", query, err)
		}
		if results.Active {
			t.Errorf("Search(%q) Active = true, want false", query)
		}
		if len(results.Folders) != 0 || len(results.Files) != 0 {
			t.Errorf("Search(%q) returned matches, want none", query)
		}
	}
}

func TestSearchIgnoresFolderContext(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	deep := env.mustCreateFolder(t, owner, root.ID, "Level1")
	deeper := env.mustCreateFolder(t, owner, deep.ID, "Level2")
	env.mustCreateFile(t, owner, deeper.ID, "buried report.pdf")

	results, err := env.search.Search(context.Background(), owner, "report")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Files) != 1 {
		t.Errorf("Files = %v, want the deeply nested match", results.Files)
	}
}

func TestSearchScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	rootA := env.mustRoot(t, "owner-a")
	rootB := env.mustRoot(t, "owner-b")
	env.mustCreateFile(t, "owner-a", rootA.ID, "shared-name.txt")
	env.mustCreateFile(t, "owner-b", rootB.ID, "shared-name.txt")

	results, err := env.search.Search(context.Background(), "owner-a", "shared")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Files) != 1 {
		t.Fatalf("Files = %d, want 1", len(results.Files))
	}
	if results.Files[0].OwnerID != "owner-a" {
		t.Errorf("match OwnerID = %s, want owner-a", results.Files[0].OwnerID)
	}
}
