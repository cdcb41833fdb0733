package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardal23/gato23/internal/archive"
	"github.com/pardal23/gato23/internal/export"
	"github.com/pardal23/gato23/internal/store"
	"github.com/pardal23/gato23/internal/testutil"
)

func seedThree(t *testing.T, v *testVault) []int64 {
	t.Helper()
	return v.seed(t,
		textDraft("a.txt", "text/plain", "alpha"),
		store.Draft{Name: "b.bin", Data: []byte{0, 1, 2, 3}},
		textDraft("c.md", "text/markdown", "# c"),
	)
}

func TestListGolden(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	out, _, err := v.run(t, "", "--format", "json", "list")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_json", []byte(out))
}

func TestListText(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	out, _, err := v.run(t, "", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "c.md", "newest record first")
	assert.Contains(t, lines[3], "a.txt")
	assert.Contains(t, lines[3], "5 B")
	assert.Contains(t, lines[2], "binary")
	assert.Contains(t, out, "3 record(s)")
}

func TestListEmpty(t *testing.T) {
	v := newTestVault(t)

	out, _, err := v.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No records in the vault.")
}

func TestImport(t *testing.T) {
	v := newTestVault(t)

	note := v.writeFile(t, "note.txt", []byte("hello vault"))
	bundle := v.writeFile(t, "bundle.zip", testutil.ZipBundle(t,
		testutil.Dir("docs"),
		testutil.File("docs/one.txt", "one"),
		testutil.File("two.txt", "two"),
	))

	out, _, err := v.run(t, "", "--format", "json", "import", note, bundle)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Succeeded)
	assert.Equal(t, 0, resp.Data.Failed)
	assert.Equal(t, 3, resp.Data.Records)
	assert.NotEmpty(t, resp.Data.BatchID)
	require.Len(t, resp.Data.Files, 2)
	assert.Equal(t, "note.txt", resp.Data.Files[0].Name)
	assert.Len(t, resp.Data.Files[1].IDs, 2)

	assert.Equal(t, 3, v.count(t))
}

func TestImport_PartialFailure(t *testing.T) {
	v := newTestVault(t)

	good := v.writeFile(t, "good.txt", []byte("fine"))
	bad := v.writeFile(t, "bad.zip", []byte("not a zip"))
	missing := filepath.Join(v.dir, "inputs", "missing.txt")

	out, _, err := v.run(t, "", "import", good, bad, missing)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeImport, ErrorCode(err))

	assert.Contains(t, out, "ok   good.txt")
	assert.Contains(t, out, "FAIL bad.zip")
	assert.Contains(t, out, "FAIL missing.txt")
	assert.Contains(t, out, "imported 1 of 3 file(s), 1 record(s) created, 2 failed")

	assert.Equal(t, 1, v.count(t))
}

func TestImport_RequiresArgs(t *testing.T) {
	v := newTestVault(t)

	_, _, err := v.run(t, "", "import")
	require.Error(t, err)
}

func TestShow(t *testing.T) {
	v := newTestVault(t)
	ids := seedThree(t, v)

	out, _, err := v.run(t, "", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)

	out, _, err = v.run(t, "", "show", "2")
	require.NoError(t, err)
	assert.Equal(t, "[Binary file: b.bin - Not displayable]\n", out)

	out, _, err = v.run(t, "", "--format", "json", "show", "3")
	require.NoError(t, err)
	var resp struct {
		Data ShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ids[2], resp.Data.ID)
	require.NotNil(t, resp.Data.Content)
	assert.Equal(t, "# c", *resp.Data.Content)
}

func TestShow_NotFound(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	_, _, err := v.run(t, "", "show", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestShow_InvalidID(t *testing.T) {
	v := newTestVault(t)

	for _, arg := range []string{"abc", "0", "-3"} {
		_, _, err := v.run(t, "", "show", arg)
		require.Error(t, err, arg)
		assert.Equal(t, ExitCommandError, GetExitCode(err), arg)
	}
}

func TestGet(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)
	outDir := filepath.Join(v.dir, "restored")

	out, _, err := v.run(t, "", "get", "2", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "b.bin"))
	assert.Contains(t, out, export.FallbackMimeType)

	data, err := os.ReadFile(filepath.Join(outDir, "b.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3}, data)
}

func TestDelete_Confirmation(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	_, prompt, err := v.run(t, "n\n", "delete", "1")
	require.Error(t, err)
	assert.Equal(t, CodeAborted, ErrorCode(err))
	assert.Contains(t, prompt, "Delete record 1?")
	assert.Equal(t, 3, v.count(t))

	_, _, err = v.run(t, "", "delete", "1")
	require.Error(t, err, "end of input declines")
	assert.Equal(t, 3, v.count(t))

	out, _, err := v.run(t, "Y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted record 1")
	assert.Equal(t, 2, v.count(t))

	_, _, err = v.run(t, "", "show", "1")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestDelete_YesFlag(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	_, prompt, err := v.run(t, "", "delete", "2", "--yes")
	require.NoError(t, err)
	assert.Empty(t, prompt)
	assert.Equal(t, 2, v.count(t))

	_, _, err = v.run(t, "", "delete", "2", "--yes")
	require.NoError(t, err, "deleting a missing record succeeds")
}

func TestClear(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	_, prompt, err := v.run(t, "no\n", "clear")
	require.Error(t, err)
	assert.Contains(t, prompt, "Delete all 3 record(s)?")
	assert.Equal(t, 3, v.count(t))

	out, _, err := v.run(t, "yes\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 record(s)")
	assert.Equal(t, 0, v.count(t))
}

func TestExport(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)
	outDir := filepath.Join(v.dir, "backup")

	_, _, err := v.run(t, "", "export", "--out", outDir)
	require.NoError(t, err)

	bundle, err := os.ReadFile(filepath.Join(outDir, export.BackupName))
	require.NoError(t, err)

	seq, err := archive.Expand(bundle)
	require.NoError(t, err)
	entries, err := archive.Collect(seq)
	require.NoError(t, err)

	got := map[string][]byte{}
	for _, e := range entries {
		got[e.Name] = e.Data
	}
	assert.Equal(t, map[string][]byte{
		"a.txt": []byte("alpha"),
		"b.bin": {0, 1, 2, 3},
		"c.md":  []byte("# c"),
	}, got)
}

func TestExport_Empty(t *testing.T) {
	v := newTestVault(t)
	outDir := filepath.Join(v.dir, "backup")

	_, _, err := v.run(t, "", "export", "--out", outDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeNothing, ErrorCode(err))

	_, statErr := os.Stat(filepath.Join(outDir, export.BackupName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNote(t *testing.T) {
	v := newTestVault(t)

	_, _, err := v.run(t, "", "note", "load")
	require.Error(t, err, "nothing saved yet")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeNothing, ErrorCode(err))

	_, _, err = v.run(t, "", "note", "save", "first draft")
	require.NoError(t, err)
	_, _, err = v.run(t, "", "note", "save", "second draft")
	require.NoError(t, err)

	out, _, err := v.run(t, "", "note", "load")
	require.NoError(t, err)
	assert.Equal(t, "second draft\n", out, "last write wins")

	outDir := filepath.Join(v.dir, "notes")
	_, _, err = v.run(t, "", "note", "export", "--out", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, export.TextExportName))
	require.NoError(t, err)
	assert.Equal(t, "second draft", string(data))

	assert.Equal(t, 0, v.count(t), "notes are kept outside the record store")
}

func TestNote_SaveFromStdin(t *testing.T) {
	v := newTestVault(t)

	_, _, err := v.run(t, "piped text\n", "note", "save")
	require.NoError(t, err)

	out, _, err := v.run(t, "", "--format", "json", "note", "load")
	require.NoError(t, err)
	var resp struct {
		Data NoteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "piped text\n", resp.Data.Text)
}

func TestNote_SaveFromRecord(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	_, _, err := v.run(t, "", "note", "save", "--from", "3")
	require.NoError(t, err)

	out, _, err := v.run(t, "", "note", "load")
	require.NoError(t, err)
	assert.Equal(t, "# c\n", out)

	_, _, err = v.run(t, "", "note", "save", "--from", "2")
	require.Error(t, err, "binary records cannot become notes")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, _, err = v.run(t, "", "note", "save", "text", "--from", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNote_ExportEmpty(t *testing.T) {
	v := newTestVault(t)

	_, _, err := v.run(t, "", "note", "export", "--out", v.dir)
	require.Error(t, err)
	assert.Equal(t, CodeNothing, ErrorCode(err))
}

func TestDatabaseFlagOverridesConfig(t *testing.T) {
	v := newTestVault(t)
	other := filepath.Join(t.TempDir(), "nested", "other.db")

	note := v.writeFile(t, "x.txt", []byte("x"))
	_, _, err := v.run(t, "", "--db", other, "import", note)
	require.NoError(t, err)

	assert.FileExists(t, other)
	assert.Equal(t, 0, v.count(t))
}

func TestExecute_JSONErrorEnvelope(t *testing.T) {
	v := newTestVault(t)
	seedThree(t, v)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(),
		[]string{"--config", v.config, "--format", "json", "show", "42"},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitFailure, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
}

func TestExecute_TextError(t *testing.T) {
	v := newTestVault(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(),
		[]string{"--config", v.config, "show", "nope"},
		strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `invalid record id "nope"`)
}

func TestExecute_Success(t *testing.T) {
	v := newTestVault(t)

	code := Execute(context.Background(),
		[]string{"--config", v.config, "list"},
		strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, ExitSuccess, code)
}

func TestExecute_JSONPartialImport(t *testing.T) {
	v := newTestVault(t)
	good := v.writeFile(t, "good.txt", []byte("fine"))
	bad := v.writeFile(t, "bad.zip", []byte("not a zip"))

	stdout := &bytes.Buffer{}
	code := Execute(context.Background(),
		[]string{"--config", v.config, "--format", "json", "import", good, bad},
		strings.NewReader(""), stdout, &bytes.Buffer{})
	assert.Equal(t, ExitFailure, code)

	dec := json.NewDecoder(stdout)
	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string       `json:"code"`
			Details ImportResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, dec.Decode(&resp))
	assert.False(t, dec.More(), "exactly one JSON document on stdout")

	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeImport, resp.Error.Code)
	assert.Equal(t, 1, resp.Error.Details.Succeeded)
	assert.Equal(t, 1, resp.Error.Details.Failed)
	require.Len(t, resp.Error.Details.Files, 2)
	assert.Empty(t, resp.Error.Details.Files[0].Error)
	assert.NotEmpty(t, resp.Error.Details.Files[1].Error)

	assert.Equal(t, 1, v.count(t))
}

func TestDataDirectoryUnavailable(t *testing.T) {
	v := newTestVault(t)
	blocker := v.writeFile(t, "blocker", []byte("a file, not a directory"))

	stdout := &bytes.Buffer{}
	code := Execute(context.Background(),
		[]string{"--config", v.config, "--format", "json", "--db", filepath.Join(blocker, "vault.db"), "list"},
		strings.NewReader(""), stdout, &bytes.Buffer{})
	assert.Equal(t, ExitCommandError, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(store.ErrCodeUnavailable), resp.Error.Code)
}
