package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDecodeMediaPayloadDataURL(t *testing.T) {
	data, ext, err := DecodeMediaPayload("data:image/png;base64," + pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.NotEmpty(t, data)
}

func TestDecodeMediaPayloadBareBase64(t *testing.T) {
	_, ext, err := DecodeMediaPayload(pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
}

func TestDecodeMediaPayloadErrors(t *testing.T) {
	cases := map[string]string{
		"empty":       "  ",
		"no payload":  "data:image/png;base64,",
		"bad base64":  "data:image/png;base64,@@@",
		"not image":   base64.StdEncoding.EncodeToString([]byte("plain text body")),
		"missing sep": "data:image/png,abc",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeMediaPayload(payload)
			assert.Error(t, err)
		})
	}
}

func TestSplitDataURL(t *testing.T) {
	mimeType, payload := SplitDataURL("data:image/jpeg;base64,AAAA")
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, "AAAA", payload)

	mimeType, payload = SplitDataURL("AAAA")
	assert.Empty(t, mimeType)
	assert.Equal(t, "AAAA", payload)
}

func TestExtensionFromMime(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionFromMime("image/jpeg; charset=binary"))
	assert.Equal(t, "webp", ExtensionFromMime("IMAGE/WEBP"))
	assert.Equal(t, "", ExtensionFromMime("text/plain"))
}
