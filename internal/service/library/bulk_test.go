package library

import (
	"context"
	"testing"

	models "satchel/internal/domain/models/library"
)

func reasonsByID(report *models.BulkReport) map[string]string {
	m := make(map[string]string, len(report.Skipped))
	for _, s := range report.Skipped {
		m[s.Item.ID] = s.Reason
	}
	return m
}

func TestBulkMoveMixedSelection(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	dest := env.mustCreateFolder(t, owner, root.ID, "Destination")
	folderOK := env.mustCreateFolder(t, owner, root.ID, "Movable")
	fileOK := env.mustCreateFile(t, owner, root.ID, "movable.txt")

	// A folder above the destination: moving it would create a cycle.
	above := env.mustCreateFolder(t, owner, root.ID, "Above")
	inner, err := env.folders.UpdateFolder(context.Background(), dest.ID, &models.UpdateFolderRequest{
		OwnerID:  owner,
		ParentID: optional(&above.ID),
	})
	if err != nil {
		t.Fatalf("setup move error = %v", err)
	}

	sel := models.Selection{
		FolderIDs: []string{folderOK.ID, inner.ID, above.ID},
		FileIDs:   []string{fileOK.ID, "no-such-file"},
	}

	report, err := env.bulk.BulkMove(context.Background(), owner, sel, inner.ID)
	if err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}

	if len(report.Applied) != 2 {
		t.Errorf("Applied = %v, want folderOK and fileOK", report.Applied)
	}

	reasons := reasonsByID(report)
	if reasons[inner.ID] != "self_move" {
		t.Errorf("reason for destination itself = %q, want self_move", reasons[inner.ID])
	}
	if reasons[above.ID] != "cycle_detected" {
		t.Errorf("reason for ancestor = %q, want cycle_detected", reasons[above.ID])
	}
	if reasons["no-such-file"] != "not_found" {
		t.Errorf("reason for missing file = %q, want not_found", reasons["no-such-file"])
	}

	moved, err := env.folders.GetFolder(context.Background(), folderOK.ID, owner)
	if err != nil {
		t.Fatalf("GetFolder() error = %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != inner.ID {
		t.Errorf("folderOK parent = %v, want %s", moved.ParentID, inner.ID)
	}
}

func TestBulkMoveToMissingDestination(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	folder := env.mustCreateFolder(t, owner, root.ID, "Stranded")

	report, err := env.bulk.BulkMove(context.Background(), owner, models.Selection{
		FolderIDs: []string{folder.ID},
	}, "ghost")
	if err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}

	if len(report.Applied) != 0 {
		t.Errorf("Applied = %v, want none", report.Applied)
	}
	reasons := reasonsByID(report)
	if reasons[folder.ID] != "destination_not_found" {
		t.Errorf("reason = %q, want destination_not_found", reasons[folder.ID])
	}
}

func TestBulkDeleteSkipsAlreadyDeletedDescendants(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	parent := env.mustCreateFolder(t, owner, root.ID, "Parent")
	child := env.mustCreateFolder(t, owner, parent.ID, "Child")
	file := env.mustCreateFile(t, owner, root.ID, "loose.txt")

	// Parent first: child is cascaded away before its own turn.
	report, err := env.bulk.BulkDelete(context.Background(), owner, models.Selection{
		FolderIDs: []string{parent.ID, child.ID},
		FileIDs:   []string{file.ID},
	})
	if err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}

	if len(report.Applied) != 2 {
		t.Errorf("Applied = %v, want parent and file", report.Applied)
	}
	reasons := reasonsByID(report)
	if reasons[child.ID] != "not_found" {
		t.Errorf("reason for cascaded child = %q, want not_found", reasons[child.ID])
	}
}

func TestBulkDeleteSkipsRoot(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustRoot(t, owner)
	folder := env.mustCreateFolder(t, owner, root.ID, "Deletable")

	report, err := env.bulk.BulkDelete(context.Background(), owner, models.Selection{
		FolderIDs: []string{root.ID, folder.ID},
	})
	if err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}

	reasons := reasonsByID(report)
	if reasons[root.ID] != "root_deletion_forbidden" {
		t.Errorf("reason for root = %q, want root_deletion_forbidden", reasons[root.ID])
	}
	if len(report.Applied) != 1 || report.Applied[0].ID != folder.ID {
		t.Errorf("Applied = %v, want only the non-root folder", report.Applied)
	}

	// The root itself must survive.
	if _, err := env.folders.GetFolder(context.Background(), root.ID, owner); err != nil {
		t.Errorf("root gone after bulk delete: %v", err)
	}
}

func TestBulkReportShapesNeverNil(t *testing.T) {
	env := newTestEnv(t)
	env.mustRoot(t, owner)

	report, err := env.bulk.BulkDelete(context.Background(), owner, models.Selection{})
	if err != nil {
		t.Fatalf("BulkDelete(empty) error = %v", err)
	}
	if report.Applied == nil || report.Skipped == nil {
		t.Errorf("report slices = (%v, %v), want empty non-nil", report.Applied, report.Skipped)
	}
}
