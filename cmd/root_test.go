package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-cli/config"
	"cinema-booking-cli/store"
)

var testInfo = BuildInfo{Name: "cinema-booking-cli", Version: "1.2.3", Commit: "abc123"}

// isolate points the config directory at a temp dir and clears the
// environment the command reads.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	for _, key := range []string{config.EnvMember, config.EnvSpecialDay, config.EnvCatalog, config.EnvLogLevel, config.EnvTUI} {
		t.Setenv(key, "")
	}
	return root
}

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut, testInfo)
	return code, out.String(), errOut.String()
}

const customCatalog = `{"movies": [{"title": "Dune", "duration_minutes": 155, "show_times": ["01:00 PM", "05:00 PM", "09:00 PM"]}]}`

func TestVersion(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "", "version")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "cinema-booking-cli 1.2.3 (abc123)\n", out)
}

func TestUsageErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "unknown command", args: []string{"bogus"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "movies"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, "", tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, errOut, "Error:")
		})
	}
}

func TestMovies_DefaultCatalog(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "", "movies")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Oppenheimer")
	assert.Contains(t, out, "11:30 AM")
	assert.Contains(t, out, "Home For Rent")
}

func TestMovies_CatalogFile(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(customCatalog), 0o644))

	code, out, _ := execute(t, "", "--catalog", path, "movies")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Barbie")
}

func TestMovies_CatalogFromEnv(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(customCatalog), 0o644))
	t.Setenv(config.EnvCatalog, path)

	code, out, _ := execute(t, "", "movies")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Dune")
}

func TestMovies_CatalogURL(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(customCatalog))
	}))
	defer server.Close()

	code, out, _ := execute(t, "", "--catalog", server.URL+"/catalog.json", "movies")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Dune")
}

func TestMovies_InvalidCatalogFile(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movies": []}`), 0o644))

	code, _, errOut := execute(t, "", "--catalog", path, "movies")
	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, errOut, "invalid catalog")
}

func TestCatalogInit(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "", "catalog", "init")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Catalog written to")

	path, err := store.DefaultCatalogPath()
	require.NoError(t, err)
	doc, err := store.LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, doc.Movies, 5)

	code, _, errOut := execute(t, "", "catalog", "init")
	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, errOut, "--force")

	code, _, _ = execute(t, "", "catalog", "init", "--force")
	assert.Equal(t, exitOK, code)
}

func TestSession_UsesSavedCatalog(t *testing.T) {
	isolate(t)
	path, err := store.DefaultCatalogPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(customCatalog), 0o644))

	code, out, _ := execute(t, "", "movies")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Dune")
}

func TestSession_Console(t *testing.T) {
	isolate(t)
	stdin := strings.Join([]string{"0", "Ana", "2", "2", "42", "2", "2"}, "\n") + "\n"

	code, out, _ := execute(t, stdin)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Ticket booked for Barbie at 02:00 PM, Seat: 42, Number of Tickets: 2")
	assert.Contains(t, out, "$21.60")
	assert.Contains(t, out, "Total Payment after discount: $19.44")
}

func TestSession_FlagsOverrideDefaults(t *testing.T) {
	isolate(t)
	stdin := strings.Join([]string{"0", "Ana", "2", "2", "42", "2", "2"}, "\n") + "\n"

	code, out, _ := execute(t, stdin, "--member=false", "--special-day=false")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "$24.00")
	assert.NotContains(t, out, "Congratulations!")
}

func TestSession_EnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvMember, "false")
	stdin := strings.Join([]string{"0", "Ana", "2", "2", "42", "2", "2"}, "\n") + "\n"

	code, out, _ := execute(t, stdin)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "$24.00")
}

func TestSession_InvalidMovie(t *testing.T) {
	isolate(t)
	stdin := strings.Join([]string{"0", "Ana", "99"}, "\n") + "\n"

	code, out, errOut := execute(t, stdin)
	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, out, "Invalid movie choice.")
	assert.NotContains(t, errOut, "Error:")
}

func TestSession_InputClosed(t *testing.T) {
	isolate(t)

	code, _, errOut := execute(t, "0\nAna\n")
	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, errOut, "input closed")
}

func TestIsRemote(t *testing.T) {
	assert.True(t, isRemote("https://example.com/catalog.json"))
	assert.True(t, isRemote("http://localhost:8080/c"))
	assert.False(t, isRemote("/tmp/catalog.json"))
	assert.False(t, isRemote("catalog.json"))
	assert.False(t, isRemote("file:///tmp/catalog.json"))
}
