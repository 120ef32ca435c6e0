package probe

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProber_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo")
	require.NoError(t, os.WriteFile(path, []byte("data1"), 0o644))

	res := NewFileProber().Probe(context.Background(), path)

	assert.True(t, res.Available())
	assert.Equal(t, int64(5), res.Size)
	require.NotNil(t, res.Info)
	assert.Equal(t, "foo", res.Info.Name())
}

func TestFileProber_MissingFile(t *testing.T) {
	res := NewFileProber().Probe(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.False(t, res.Available())
	assert.Equal(t, Absent, res.Size)
	assert.Nil(t, res.Info)
}

func TestFileProber_EmptyFileIsAvailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	res := NewFileProber().Probe(context.Background(), path)

	assert.True(t, res.Available())
	assert.Equal(t, int64(0), res.Size)
}

func TestFileProber_StatErrorIsAbsent(t *testing.T) {
	p := NewStatProber(func(string) (fs.FileInfo, error) {
		return nil, fs.ErrPermission
	})

	res := p.Probe(context.Background(), "anything")

	assert.Equal(t, Absent, res.Size)
}

func TestFileProber_CanceledContext(t *testing.T) {
	called := false
	p := NewStatProber(func(string) (fs.FileInfo, error) {
		called = true
		return nil, errors.New("unreachable")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Probe(ctx, "x")

	assert.Equal(t, Absent, res.Size)
	assert.False(t, called, "stat must not run after cancellation")
}

func TestFSProber(t *testing.T) {
	fsys := fstest.MapFS{
		"dir/a.txt": {Data: []byte("hello")},
	}
	p := NewFSProber(fsys)

	assert.Equal(t, int64(5), p.Probe(context.Background(), "dir/a.txt").Size)
	assert.Equal(t, Absent, p.Probe(context.Background(), "dir/b.txt").Size)
}

func TestProberFunc(t *testing.T) {
	var p Prober = ProberFunc(func(_ context.Context, resource string) Result {
		return Result{Size: int64(len(resource))}
	})

	assert.Equal(t, int64(3), p.Probe(context.Background(), "abc").Size)
}
