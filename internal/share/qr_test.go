package share

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostQR(t *testing.T) {
	data, err := PostQR("http://localhost:3030", 42)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestPostQR_TrailingSlash(t *testing.T) {
	a, err := PostQR("http://localhost:3030/", 42)
	require.NoError(t, err)
	b, err := PostQR("http://localhost:3030", 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
