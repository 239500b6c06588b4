package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapager/internal/storage"
)

func newTestShell(t *testing.T, pages uint32) (*Shell, *bytes.Buffer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, storage.CreateFile(path, pages))

	p, err := storage.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	var out bytes.Buffer
	return New(p, &out, ""), &out, path
}

func TestShell_Run_ExitStopsLoop(t *testing.T) {
	sh, out, _ := newTestShell(t, 1)

	err := sh.Run(strings.NewReader("hello\n.exit\n.pages\n"))
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "db > ")
	assert.Contains(t, got, "Unrecognized command 'hello'.")
	assert.NotContains(t, got, "pages:")
}

func TestShell_Run_EOF(t *testing.T) {
	sh, out, _ := newTestShell(t, 2)

	require.NoError(t, sh.Run(strings.NewReader(".pages\n")))
	assert.Contains(t, out.String(), "pages: 2")
}

func TestShell_FillGetFlush(t *testing.T) {
	sh, out, path := newTestShell(t, 2)

	require.True(t, sh.Exec(".fill 1 0xAA"))
	require.True(t, sh.Exec(".get 1"))
	require.True(t, sh.Exec(".flush 1"))
	require.True(t, sh.Exec(".stats"))

	got := out.String()
	assert.Contains(t, got, "wrote page 1")
	assert.Contains(t, got, "head=aa aa aa")
	assert.Contains(t, got, "flushed page 1")
	assert.Contains(t, got, "hits=1 misses=1 evictions=0 writebacks=0")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, storage.PageSize), raw[storage.PageSize:])
	assert.Equal(t, make([]byte, storage.PageSize), raw[:storage.PageSize])
}

func TestShell_Errors(t *testing.T) {
	sh, out, _ := newTestShell(t, 1)

	cases := []struct {
		line string
		want string
	}{
		{".get 5", "page number out of range"},
		{".get", "bad arguments"},
		{".get x", "bad arguments"},
		{".fill 0 300", "bad arguments"},
		{".flush", "bad arguments"},
	}
	for _, tc := range cases {
		out.Reset()
		assert.True(t, sh.Exec(tc.line))
		assert.Contains(t, out.String(), "error: ")
		assert.Contains(t, out.String(), tc.want, tc.line)
	}
}

func TestShell_FlushOutOfRangeIsSilent(t *testing.T) {
	sh, out, _ := newTestShell(t, 1)

	assert.True(t, sh.Exec(".flush 9"))
	assert.Equal(t, "flushed page 9\n", out.String())
}

func TestDescribe(t *testing.T) {
	page := &storage.Page{Number: 3}
	page.Data[0] = 0x01

	got := Describe(page)
	assert.True(t, strings.HasPrefix(got, "page 3 digest="))
	assert.Contains(t, got, "head=01 00 00")
}
