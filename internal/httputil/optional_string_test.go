package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringTriState(t *testing.T) {
	type payload struct {
		ParentID OptionalString `json:"parent_id,omitempty"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{"field absent", `{}`, false, nil},
		{"field null", `{"parent_id": null}`, true, nil},
		{"field set", `{"parent_id": "folder-9"}`, true, strPtr("folder-9")},
		{"empty string is a value", `{"parent_id": ""}`, true, strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.body, err)
			}

			if p.ParentID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.ParentID.Present, tt.wantPresent)
			}
			switch {
			case tt.wantValue == nil && p.ParentID.Value != nil:
				t.Errorf("Value = %q, want nil", *p.ParentID.Value)
			case tt.wantValue != nil && p.ParentID.Value == nil:
				t.Errorf("Value = nil, want %q", *tt.wantValue)
			case tt.wantValue != nil && *p.ParentID.Value != *tt.wantValue:
				t.Errorf("Value = %q, want %q", *p.ParentID.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("Unmarshal(42) succeeded, want error")
	}
}

func strPtr(s string) *string {
	return &s
}
