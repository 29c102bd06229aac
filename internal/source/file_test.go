package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"respan/internal/source"
)

func TestNewVirtualNormalizesCRLF(t *testing.T) {
	f := source.NewVirtual("t.rs", []byte("fn main() {\r\n}\r\n"))
	require.Equal(t, "fn main() {\n}\n", string(f.Content))
	require.NotZero(t, f.Flags&source.FileNormalizedCRLF)
	require.NotZero(t, f.Flags&source.FileVirtual)
}

func TestNewVirtualKeepsLoneCR(t *testing.T) {
	f := source.NewVirtual("t.rs", []byte("a\rb"))
	require.Equal(t, "a\rb", string(f.Content))
	require.Zero(t, f.Flags&source.FileNormalizedCRLF)
}

func TestNewVirtualStripsBOM(t *testing.T) {
	f := source.NewVirtual("t.rs", []byte("\xEF\xBB\xBFfn"))
	require.Equal(t, "fn", string(f.Content))
	require.NotZero(t, f.Flags&source.FileHadBOM)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0o644))

	f, err := source.Load(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path)
	require.Equal(t, uint32(13), f.Len())
	require.Zero(t, f.Flags&source.FileVirtual)
}

func TestLoadMissing(t *testing.T) {
	_, err := source.Load(filepath.Join(t.TempDir(), "absent.rs"))
	require.Error(t, err)
}
