package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pardal23/gato23/internal/store"
	"github.com/pardal23/gato23/internal/testutil"
)

// testVault is a vault rooted in a temporary directory.
type testVault struct {
	dir    string
	config string
	db     string
}

func newTestVault(t *testing.T) *testVault {
	t.Helper()
	dir := t.TempDir()

	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf("data_dir: %q\n", dir)), 0o644))

	return &testVault{dir: dir, config: config, db: filepath.Join(dir, "vault.db")}
}

// run executes the CLI against the vault with the given standard input.
func (v *testVault) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--config", v.config}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// seed stores drafts directly with a deterministic clock and returns their ids.
func (v *testVault) seed(t *testing.T, drafts ...store.Draft) []int64 {
	t.Helper()
	ctx := context.Background()

	st := store.New(v.db, store.WithClock(testutil.NewDeterministicClock()))
	require.NoError(t, st.Open(ctx))
	defer st.Close()

	ids := make([]int64, 0, len(drafts))
	for _, d := range drafts {
		id, err := st.Add(ctx, d)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// count returns the number of stored records.
func (v *testVault) count(t *testing.T) int {
	t.Helper()
	ctx := context.Background()

	st := store.New(v.db)
	require.NoError(t, st.Open(ctx))
	defer st.Close()

	n, err := st.Count(ctx)
	require.NoError(t, err)
	return n
}

// writeFile creates a file in a scratch input directory and returns its path.
func (v *testVault) writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(v.dir, "inputs", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func textDraft(name, mimeType, content string) store.Draft {
	return store.Draft{Name: name, MimeType: mimeType, Data: []byte(content), TextContent: &content}
}
