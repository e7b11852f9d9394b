package cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobPath(t *testing.T) {
	path, err := BlobPath(101, 5, "blob-1")
	require.Nil(t, err)
	assert.Equal(t, "101/5/blob-1", path)

	path, err = BlobPath(-1, -1, "b")
	require.Nil(t, err)
	assert.Equal(t, "-1/-1/b", path)

	_, err = BlobPath(101, 5, "")
	assert.ErrorIs(t, err, ErrInvalidBlobPath)

	_, err = BlobPath(101, 5, "a/b")
	assert.ErrorIs(t, err, ErrInvalidBlobPath)
}

func TestContainerPrefix(t *testing.T) {
	assert.Equal(t, "101/5/", ContainerPrefix(101, 5))
}

func TestParseBlobPath(t *testing.T) {
	aid, cid, blobID, err := ParseBlobPath("101/5/blob-1")
	require.Nil(t, err)
	assert.Equal(t, int16(101), aid)
	assert.Equal(t, int16(5), cid)
	assert.Equal(t, "blob-1", blobID)

	// blob ids may themselves contain separators
	_, _, blobID, err = ParseBlobPath("1/2/a/b/c")
	require.Nil(t, err)
	assert.Equal(t, "a/b/c", blobID)

	for _, bad := range []string{"", "1/2/", "1/2", "x/2/b", "1/99999/b"} {
		_, _, _, err := ParseBlobPath(bad)
		assert.ErrorIs(t, err, ErrInvalidBlobPath, "path %q", bad)
	}
}

func TestBlobPathRoundTrip(t *testing.T) {
	path, err := BlobPath(-32768, 32767, "0123456789abcdef")
	require.Nil(t, err)
	aid, cid, blobID, err := ParseBlobPath(path)
	require.Nil(t, err)
	assert.Equal(t, int16(-32768), aid)
	assert.Equal(t, int16(32767), cid)
	assert.Equal(t, "0123456789abcdef", blobID)
}
