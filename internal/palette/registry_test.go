package palette

import "testing"

func TestRegistryLoadsEmbeddedPalette(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tags := r.List()
	if len(tags) == 0 {
		t.Fatal("List() returned no tags")
	}

	// List is ordered by id.
	for i := 1; i < len(tags); i++ {
		if tags[i-1].ID >= tags[i].ID {
			t.Errorf("List() not ordered: %q before %q", tags[i-1].ID, tags[i].ID)
		}
	}

	for _, tag := range tags {
		if tag.Label == "" || tag.Hex == "" {
			t.Errorf("tag %q has empty label or hex", tag.ID)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if !r.Has("teal") {
		t.Error("Has(teal) = false, want true")
	}
	if r.Has("chartreuse") {
		t.Error("Has(chartreuse) = true, want false")
	}

	tag, ok := r.Get("blue")
	if !ok {
		t.Fatal("Get(blue) not found")
	}
	if tag.Label != "Blue" {
		t.Errorf("Get(blue).Label = %q, want Blue", tag.Label)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found a tag")
	}
}
