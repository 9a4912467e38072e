package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinema-booking-cli/model"
)

func setTestConfigDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	return root
}

func sampleDocument() model.CatalogDocument {
	return model.CatalogDocument{Movies: []model.CatalogEntry{
		{Title: "Barbie", DurationMinutes: 120, ShowTimes: []string{"10:00 AM", "02:00 PM", "06:00 PM"}},
		{Title: "Oppenheimer", DurationMinutes: 110, ShowTimes: []string{"11:30 AM", "03:30 PM", "07:30 PM"}},
	}}
}

func TestSaveCatalog_RoundTrip(t *testing.T) {
	setTestConfigDir(t)

	path, err := DefaultCatalogPath()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if CatalogFileExists(path) {
		t.Fatalf("expected no catalog at %s", path)
	}

	if err := SaveCatalog(path, sampleDocument(), false); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !CatalogFileExists(path) {
		t.Fatalf("expected catalog at %s", path)
	}

	doc, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(doc.Movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(doc.Movies))
	}
	if doc.Movies[1].Title != "Oppenheimer" || doc.Movies[1].ShowTimes[2] != "07:30 PM" {
		t.Fatalf("unexpected movie: %+v", doc.Movies[1])
	}
	if doc.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}
}

func TestSaveCatalog_RefusesOverwrite(t *testing.T) {
	root := setTestConfigDir(t)
	path := filepath.Join(root, "catalog.json")

	if err := SaveCatalog(path, sampleDocument(), false); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	err := SaveCatalog(path, sampleDocument(), false)
	if !errors.Is(err, ErrCatalogExists) {
		t.Fatalf("expected ErrCatalogExists, got %v", err)
	}
	if err := SaveCatalog(path, sampleDocument(), true); err != nil {
		t.Fatalf("expected overwrite to succeed, got %v", err)
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	root := setTestConfigDir(t)

	_, err := LoadCatalog(filepath.Join(root, "nope.json"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadCatalog_InvalidJSON(t *testing.T) {
	root := setTestConfigDir(t)
	path := filepath.Join(root, "catalog.json")
	if err := os.WriteFile(path, []byte("{movies"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCatalog(path)
	if err == nil || !strings.Contains(err.Error(), "invalid catalog format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name    string
		doc     model.CatalogDocument
		wantErr string
	}{
		{
			name: "valid",
			doc:  sampleDocument(),
		},
		{
			name:    "no movies",
			doc:     model.CatalogDocument{},
			wantErr: "Movies",
		},
		{
			name: "missing title",
			doc: model.CatalogDocument{Movies: []model.CatalogEntry{
				{DurationMinutes: 90, ShowTimes: []string{"10:00 AM"}},
			}},
			wantErr: "Title is required",
		},
		{
			name: "zero duration",
			doc: model.CatalogDocument{Movies: []model.CatalogEntry{
				{Title: "Barbie", ShowTimes: []string{"10:00 AM"}},
			}},
			wantErr: "DurationMinutes must be greater than 0",
		},
		{
			name: "no show times",
			doc: model.CatalogDocument{Movies: []model.CatalogEntry{
				{Title: "Barbie", DurationMinutes: 120},
			}},
			wantErr: "ShowTimes",
		},
		{
			name: "blank show time",
			doc: model.CatalogDocument{Movies: []model.CatalogEntry{
				{Title: "Barbie", DurationMinutes: 120, ShowTimes: []string{"10:00 AM", ""}},
			}},
			wantErr: "ShowTimes[1] is required",
		},
		{
			name: "duplicate title",
			doc: model.CatalogDocument{Movies: []model.CatalogEntry{
				{Title: "Barbie", DurationMinutes: 120, ShowTimes: []string{"10:00 AM"}},
				{Title: "Barbie", DurationMinutes: 90, ShowTimes: []string{"02:00 PM"}},
			}},
			wantErr: `duplicate title "Barbie"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.doc)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
