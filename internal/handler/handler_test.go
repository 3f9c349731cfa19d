package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	library "satchel/internal/domain/models/library"
	"satchel/internal/middleware"
	"satchel/internal/palette"
	"satchel/internal/repository/memory"
	serviceLib "satchel/internal/service/library"
)

const testOwner = "owner-1"

// newTestServer wires the full handler stack against the in-memory store,
// with a static owner standing in for JWT auth.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	folderRepo := memory.NewFolderRepository(store)
	fileRepo := memory.NewFileRepository(store)
	txManager := memory.NewTransactionManager()

	registry, err := palette.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	bootstrapper := serviceLib.NewRootBootstrapper(folderRepo, txManager, logger)
	folderService := serviceLib.NewFolderService(folderRepo, fileRepo, registry, txManager, logger)
	fileService := serviceLib.NewFileService(fileRepo, folderRepo, txManager, logger)
	treeService := serviceLib.NewTreeService(folderRepo, fileRepo, logger)
	searchService := serviceLib.NewSearchService(folderRepo, fileRepo, logger)
	bulkService := serviceLib.NewBulkService(folderService, fileService, logger)

	folderHandler := NewFolderHandler(folderService, logger)
	fileHandler := NewFileHandler(fileService, logger)
	treeHandler := NewTreeHandler(treeService, bootstrapper, logger)
	searchHandler := NewSearchHandler(searchService, logger)
	bulkHandler := NewBulkHandler(bulkService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/tree/root", treeHandler.GetRoot)
	mux.HandleFunc("GET /api/tree/destinations", treeHandler.ListDestinations)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/files", fileHandler.CreateFile)
	mux.HandleFunc("GET /api/search", searchHandler.Search)
	mux.HandleFunc("POST /api/bulk/delete", bulkHandler.BulkDelete)

	server := httptest.NewServer(middleware.StaticOwner(testOwner)(mux))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func getRoot(t *testing.T, server *httptest.Server) library.Folder {
	t.Helper()
	resp, data := doJSON(t, server, http.MethodGet, "/api/tree/root", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/tree/root = %d: %s", resp.StatusCode, data)
	}
	var root library.Folder
	if err := json.Unmarshal(data, &root); err != nil {
		t.Fatalf("unmarshal root: %v", err)
	}
	return root
}

func TestFolderLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	root := getRoot(t, server)

	// Create.
	resp, data := doJSON(t, server, http.MethodPost, "/api/folders", map[string]string{
		"parent_id": root.ID,
		"name":      "Reports",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/folders = %d: %s", resp.StatusCode, data)
	}
	var created library.Folder
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal created folder: %v", err)
	}

	// Rename via PATCH.
	resp, data = doJSON(t, server, http.MethodPatch, "/api/folders/"+created.ID, map[string]string{
		"name": "Quarterly Reports",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH = %d: %s", resp.StatusCode, data)
	}
	var renamed library.Folder
	if err := json.Unmarshal(data, &renamed); err != nil {
		t.Fatalf("unmarshal renamed folder: %v", err)
	}
	if renamed.Name != "Quarterly Reports" {
		t.Errorf("renamed Name = %q", renamed.Name)
	}

	// Delete.
	resp, _ = doJSON(t, server, http.MethodDelete, "/api/folders/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, server, http.MethodGet, "/api/folders/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", resp.StatusCode)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	server := newTestServer(t)
	root := getRoot(t, server)

	// Two nested folders for the cycle case.
	_, data := doJSON(t, server, http.MethodPost, "/api/folders", map[string]string{
		"parent_id": root.ID, "name": "Outer",
	})
	var outer library.Folder
	if err := json.Unmarshal(data, &outer); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_, data = doJSON(t, server, http.MethodPost, "/api/folders", map[string]string{
		"parent_id": outer.ID, "name": "Inner",
	})
	var inner library.Folder
	if err := json.Unmarshal(data, &inner); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"delete root forbidden", http.MethodDelete, "/api/folders/" + root.ID, nil, http.StatusForbidden},
		{"self move bad request", http.MethodPatch, "/api/folders/" + outer.ID,
			map[string]string{"parent_id": outer.ID}, http.StatusBadRequest},
		{"cycle conflict", http.MethodPatch, "/api/folders/" + outer.ID,
			map[string]string{"parent_id": inner.ID}, http.StatusConflict},
		{"missing folder", http.MethodGet, "/api/folders/no-such-id", nil, http.StatusNotFound},
		{"move to missing destination", http.MethodPatch, "/api/folders/" + outer.ID,
			map[string]string{"parent_id": "ghost"}, http.StatusNotFound},
		{"blank rename", http.MethodPatch, "/api/folders/" + outer.ID,
			map[string]string{"name": "   "}, http.StatusBadRequest},
		{"file into missing folder", http.MethodPost, "/api/files",
			map[string]string{"folder_id": "ghost", "name": "lost.txt"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doJSON(t, server, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.path, resp.StatusCode, tt.wantStatus, data)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
		})
	}
}

func TestSearchOverHTTP(t *testing.T) {
	server := newTestServer(t)
	root := getRoot(t, server)

	doJSON(t, server, http.MethodPost, "/api/folders", map[string]string{
		"parent_id": root.ID, "name": "Catalog",
	})
	doJSON(t, server, http.MethodPost, "/api/files", map[string]string{
		"folder_id": root.ID, "name": "scatter.pdf",
	})
	doJSON(t, server, http.MethodPost, "/api/files", map[string]string{
		"folder_id": root.ID, "name": "dogs.txt",
	})

	resp, data := doJSON(t, server, http.MethodGet, "/api/search?q=cat", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/search = %d: %s", resp.StatusCode, data)
	}

	var results library.SearchResults
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if !results.Active {
		t.Error("Active = false")
	}
	if len(results.Folders) != 1 || len(results.Files) != 1 {
		t.Errorf("matches = %d folders / %d files, want 1/1", len(results.Folders), len(results.Files))
	}
}

func TestBulkDeleteOverHTTP(t *testing.T) {
	server := newTestServer(t)
	root := getRoot(t, server)

	_, data := doJSON(t, server, http.MethodPost, "/api/folders", map[string]string{
		"parent_id": root.ID, "name": "Doomed",
	})
	var doomed library.Folder
	if err := json.Unmarshal(data, &doomed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	resp, data := doJSON(t, server, http.MethodPost, "/api/bulk/delete", map[string]any{
		"selection": map[string]any{
			"folder_ids": []string{doomed.ID, root.ID},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/bulk/delete = %d: %s", resp.StatusCode, data)
	}

	var report library.BulkReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if len(report.Applied) != 1 || report.Applied[0].ID != doomed.ID {
		t.Errorf("Applied = %v, want only %s", report.Applied, doomed.ID)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Reason != "root_deletion_forbidden" {
		t.Errorf("Skipped = %v, want root_deletion_forbidden", report.Skipped)
	}

	resp, _ = doJSON(t, server, http.MethodPost, "/api/bulk/delete", map[string]any{
		"selection": map[string]any{},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty selection = %d, want 400", resp.StatusCode)
	}
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	server := newTestServer(t)
	root := getRoot(t, server)

	// A mux without the owner middleware: context carries no owner.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	folderService := serviceLib.NewFolderService(
		memory.NewFolderRepository(store),
		memory.NewFileRepository(store),
		mustRegistry(t),
		memory.NewTransactionManager(),
		logger,
	)
	h := NewFolderHandler(folderService, logger)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/folders/%s", root.ID), nil)
	req.SetPathValue("id", root.ID)
	rec := httptest.NewRecorder()
	h.GetFolder(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GetFolder without owner = %d, want 401", rec.Code)
	}
}

func mustRegistry(t *testing.T) *palette.Registry {
	t.Helper()
	r, err := palette.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}
