package files

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkeenan750/snapcourse/internal/config"
)

func TestKey(t *testing.T) {
	key, err := Key(3, 2, "../My Notes (final).pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "course/3/section/2/"), key)
	assert.True(t, strings.HasSuffix(key, "-My_Notes_final_.pdf"), key)

	_, err = cleanKey(key)
	require.NoError(t, err)

	other, err := Key(3, 2, "../My Notes (final).pdf")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	key, err = Key(1, 0, "...")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "-file"), key)
}

func TestCleanKey(t *testing.T) {
	for _, bad := range []string{"", "/abs", "../up", "a/../../b", "a//b", "a/"} {
		_, err := cleanKey(bad)
		require.ErrorIs(t, err, ErrInvalidKey, bad)
	}

	got, err := cleanKey("course/1/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "course/1/x.txt", got)
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key := "course/1/section/2/abc-notes.txt"
	require.NoError(t, s.Put(ctx, key, strings.NewReader("hello"), 5, "text/plain"))

	r, err := s.Open(ctx, key)
	require.NoError(t, err)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Open(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Put(ctx, "../escape", strings.NewReader("x"), 1, ""), ErrInvalidKey)
}

func TestNew(t *testing.T) {
	s, err := New(config.Files{Backend: config.FilesLocal, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)

	s, err = New(config.Files{Backend: config.FilesMinio, Minio: config.Minio{Endpoint: "localhost:9000", Bucket: "snap"}})
	require.NoError(t, err)
	assert.IsType(t, &MinioStore{}, s)

	_, err = New(config.Files{Backend: config.FilesMinio})
	require.Error(t, err)

	_, err = New(config.Files{Backend: "tape"})
	require.Error(t, err)

	_, err = New(config.Files{Backend: config.FilesLocal})
	require.Error(t, err)
}
