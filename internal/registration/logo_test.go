package registration

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeLogoNil(t *testing.T) {
	uri, err := EncodeLogo(nil)
	require.NoError(t, err)
	assert.Nil(t, uri)
}

func TestEncodeLogoMediaType(t *testing.T) {
	cases := map[string]struct {
		declared string
		data     []byte
		want     string
	}{
		"declared type wins":       {declared: "image/jpeg", data: pngHeader, want: "image/jpeg"},
		"parameters are dropped":   {declared: "image/svg+xml; charset=utf-8", data: []byte("<svg/>"), want: "image/svg+xml"},
		"missing type is sniffed":  {declared: "", data: pngHeader, want: "image/png"},
		"generic type is sniffed":  {declared: "application/octet-stream", data: pngHeader, want: "image/png"},
		"empty file stays generic": {declared: "", data: nil, want: "application/octet-stream"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			uri, err := EncodeLogo(NewLogo("logo", tc.declared, tc.data))
			require.NoError(t, err)
			require.NotNil(t, uri)
			assert.Equal(t, "data:"+tc.want+";base64,"+base64.StdEncoding.EncodeToString(tc.data), *uri)
		})
	}
}

func TestLogoFromFileUsesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	logo, err := LogoFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", logo.Filename)
	assert.Equal(t, "image/png", logo.ContentType)

	uri, err := EncodeLogo(logo)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), *uri)
}

func TestLogoFromFileSniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.unknownext")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	logo, err := LogoFromFile(path)
	require.NoError(t, err)
	uri, err := EncodeLogo(logo)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), *uri)
}

func TestLogoFromFileErrors(t *testing.T) {
	_, err := LogoFromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = LogoFromFile(t.TempDir())
	assert.Error(t, err)
}

func TestLogoFromDataURIRoundTrip(t *testing.T) {
	original := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	logo, err := LogoFromDataURI(original)
	require.NoError(t, err)
	assert.Equal(t, "image/png", logo.ContentType)

	uri, err := EncodeLogo(logo)
	require.NoError(t, err)
	assert.Equal(t, original, *uri)
}

func TestLogoFromDataURIRejectsMalformed(t *testing.T) {
	for _, uri := range []string{
		"image/png;base64,AAAA",
		"data:image/png,plain",
		"data:image/png;base64,!!!",
	} {
		_, err := LogoFromDataURI(uri)
		assert.ErrorIs(t, err, ErrMalformedDataURI, uri)
	}
}

func TestIsImageDataURI(t *testing.T) {
	assert.True(t, IsImageDataURI("data:image/png;base64,AAAA"))
	assert.False(t, IsImageDataURI("data:text/html;base64,AAAA"))
	assert.False(t, IsImageDataURI("javascript:alert(1)"))
	assert.False(t, IsImageDataURI(""))
}
