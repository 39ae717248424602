package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nissyi-gh/highstill/internal/kv"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes one CLI invocation against a file backend in dataDir.
func runCLI(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	_, out, err := runApp(stdin, append([]string{"--backend", "file", "--data", dataDir}, args...)...)
	return out, err
}

func runApp(stdin string, args ...string) (*app, string, error) {
	a := &app{}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := run(a, root)
	return a, out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return filepath.Join(dir, "data")
}

func addGig(t *testing.T, data, title string) {
	t.Helper()
	out, err := runCLI(t, data, "", "add", "-t", title, "-d", "desc", "--date", "2025-01-01", "-p", "High", "-l", "Venue A")
	require.NoError(t, err, out)
	assert.Contains(t, out, `✔ Task "`+title+`" added successfully!`)
}

func onlyID(t *testing.T, data string) string {
	t.Helper()
	out, err := runCLI(t, data, "", "list")
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "[") {
			return strings.Fields(line[4:])[0]
		}
	}
	t.Fatalf("no task in listing:\n%s", out)
	return ""
}

func TestCLI_EndToEnd(t *testing.T) {
	data := setupCLI(t)

	addGig(t, data, "Gig")
	id := onlyID(t, data)

	out, err := runCLI(t, data, "", "toggle", id)
	require.NoError(t, err)
	assert.Contains(t, out, `Task "Gig" completed!`)

	out, err = runCLI(t, data, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 1")

	out, err = runCLI(t, data, "", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, `Task "Gig" deleted successfully!`)

	out, err = runCLI(t, data, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 total")
}

func TestCLI_AddValidation(t *testing.T) {
	data := setupCLI(t)

	out, err := runCLI(t, data, "", "add", "-t", "Gig")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMissingFields)
	assert.Contains(t, out, "✘ "+store.MissingFieldsMessage)
}

func TestCLI_DeletePrompt(t *testing.T) {
	data := setupCLI(t)
	addGig(t, data, "Gig")
	id := onlyID(t, data)

	out, err := runCLI(t, data, "n\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, `Are you sure you want to delete "Gig"?`)
	assert.Contains(t, out, "Cancelled.")

	out, err = runCLI(t, data, "y\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted successfully")

	_, err = runCLI(t, data, "", "delete", id, "--yes")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCLI_EditKeepsUnsetFields(t *testing.T) {
	data := setupCLI(t)
	addGig(t, data, "Gig")
	id := onlyID(t, data)

	_, err := runCLI(t, data, "", "edit", id, "-l", "Venue B")
	require.NoError(t, err)

	out, err := runCLI(t, data, "", "announce", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Gig at High Still")
	assert.Contains(t, out, "Where: Venue B")
}

func TestCLI_ListSort(t *testing.T) {
	data := setupCLI(t)
	addGig(t, data, "beta")
	addGig(t, data, "Alpha")

	out, err := runCLI(t, data, "", "list", "--sort", "title-asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "beta"))
}

func TestCLI_Import(t *testing.T) {
	data := setupCLI(t)

	file := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
tasks:
  - title: "Folk night"
    description: "Three acts"
    due_date: "2025-05-02"
    priority: High
    location: "Main hall"
`), 0o644))

	out, err := runCLI(t, data, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 task(s).")

	out, err = runCLI(t, data, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Total:     1")
}

func TestCLI_InvalidID(t *testing.T) {
	data := setupCLI(t)
	_, err := runCLI(t, data, "", "toggle", "abc")
	assert.ErrorContains(t, err, `invalid task id "abc"`)
}

func TestCLI_ClosesBackendAfterFailure(t *testing.T) {
	setupCLI(t)

	a, _, err := runApp("", "--backend", "memory", "toggle", "999")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NotNil(t, a.backend)

	_, _, err = a.backend.Get(model.StorageKey)
	assert.ErrorIs(t, err, kv.ErrClosed)
}
