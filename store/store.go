package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cinema-booking-cli/model"
)

const (
	appDirName      = "cinema-booking-cli"
	catalogFileName = "catalog.json"
)

// ErrCatalogExists is returned by SaveCatalog when the target exists and
// overwrite was not requested.
var ErrCatalogExists = errors.New("catalog file already exists")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultCatalogPath is where the catalog document lives when no path is given.
func DefaultCatalogPath() (string, error) {
	return configPath(catalogFileName)
}

// LoadCatalog reads and validates a catalog document.
func LoadCatalog(path string) (model.CatalogDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CatalogDocument{}, err
	}

	var doc model.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.CatalogDocument{}, fmt.Errorf("invalid catalog format in %s: %w", path, err)
	}
	if err := ValidateCatalog(doc); err != nil {
		return model.CatalogDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveCatalog writes a catalog document, stamping UpdatedAt.
func SaveCatalog(path string, doc model.CatalogDocument, overwrite bool) error {
	if err := ValidateCatalog(doc); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrCatalogExists, path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	doc.UpdatedAt = time.Now()
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// ValidateCatalog checks field constraints and rejects duplicate titles.
func ValidateCatalog(doc model.CatalogDocument) error {
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid catalog: %s", validationMessage(verrs))
		}
		return fmt.Errorf("invalid catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Movies))
	for _, entry := range doc.Movies {
		if seen[entry.Title] {
			return fmt.Errorf("invalid catalog: duplicate title %q", entry.Title)
		}
		seen[entry.Title] = true
	}
	return nil
}

// CatalogFileExists reports whether path points at a regular file.
func CatalogFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "CatalogDocument.")
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must contain at least %s items", field, fe.Param()))
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
