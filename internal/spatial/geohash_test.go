package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGeohash(t *testing.T) {
	assert.Equal(t, "dr5xfdt", EncodeGeohash(40.752, -73.7107, 7))
	assert.Equal(t, "9q8yyk8", EncodeGeohash(37.7749, -122.4194, 7))
}

func TestEncodeGeohashClampsPrecision(t *testing.T) {
	assert.Len(t, EncodeGeohash(40.752, -73.7107, 0), 1)
	assert.Len(t, EncodeGeohash(40.752, -73.7107, 99), 12)
}

func TestDecodeGeohash(t *testing.T) {
	cases := []struct {
		hash     string
		lat, lon float64
	}{
		{"dr5xfdt", 40.75172424316406, -73.71070861816406},
		{"dr5rw5u", 40.71464538574219, -73.90983581542969},
		{"dr5xg5g", 40.75859069824219, -73.69148254394531},
		{"9q8yyk8", 37.77442932128906, -122.41996765136719},
	}
	for _, c := range cases {
		p, ok := DecodeGeohash(c.hash)
		require.True(t, ok, c.hash)
		assert.Equal(t, c.lat, p.Lat, c.hash)
		assert.Equal(t, c.lon, p.Lon, c.hash)
	}
}

func TestDecodeGeohashInvalid(t *testing.T) {
	for _, hash := range []string{"", "dr5a", "hello world", "DR5XF"} {
		_, ok := DecodeGeohash(hash)
		assert.False(t, ok, hash)
	}
}

func TestDecodeCenterStaysInCell(t *testing.T) {
	// The decoded center re-encodes at lower precision into a prefix of
	// the original hash
	p, ok := DecodeGeohash("dr5rw5u")
	require.True(t, ok)
	assert.Equal(t, "dr5rw", EncodeGeohash(p.Lat, p.Lon, 5))
}

func TestIsGeohash(t *testing.T) {
	assert.True(t, IsGeohash("dr5xfdt"))
	assert.True(t, IsGeohash("0"))
	assert.False(t, IsGeohash(""))
	assert.False(t, IsGeohash("dr5a"))    // 'a' is not in the alphabet
	assert.False(t, IsGeohash("Cluster")) // uppercase
	assert.False(t, IsGeohash("dr5xfdtdr5xfdt"))
}
