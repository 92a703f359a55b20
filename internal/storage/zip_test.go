package storage

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/eventpkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() eventpkg.EventPackage {
	return eventpkg.EventPackage{
		ID:      "11111111-1111-1111-1111-111111111111",
		Version: "1.0",
		Annotations: []eventpkg.EventAnnotation{
			{LabelID: "l1", Value: eventpkg.NewStringValue("v1"), Timestamp: time.Now().UTC()},
		},
		Metadata: eventpkg.EventMetadata{CreatedAt: time.Now().UTC(), Source: eventpkg.EventSourceWeb},
	}
}

func TestPackageWithoutMedia(t *testing.T) {
	ep := sampleEvent()
	packaged, err := Package(ep)
	require.NoError(t, err)
	assert.Len(t, packaged.EventHash, 64)
	assert.Equal(t, len(packaged.Bytes), packaged.Size)

	r, err := zip.NewReader(bytes.NewReader(packaged.Bytes), int64(len(packaged.Bytes)))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	assert.True(t, names["event.json"])
	assert.True(t, names["manifest.json"])
	assert.False(t, names["media/"])
}

func TestPackageWithMedia(t *testing.T) {
	ep := sampleEvent()
	mediaData := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
	ep.Media = &eventpkg.EventMedia{
		Type: eventpkg.MediaTypeImagePNG,
		Data: mediaData,
		Name: "photo.png",
		Size: 16,
	}

	packaged, err := Package(ep)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(packaged.Bytes), int64(len(packaged.Bytes)))
	require.NoError(t, err)

	var found bool
	for _, f := range r.File {
		if f.Name == "media/photo.png" {
			found = true
			rc, openErr := f.Open()
			require.NoError(t, openErr)
			data, readErr := io.ReadAll(rc)
			require.NoError(t, readErr)
			assert.Equal(t, "fake-image-bytes", string(data))
			rc.Close()
		}
	}
	assert.True(t, found, "expected media/photo.png entry in archive")
}

func TestPackageRejectsInvalidMediaEncoding(t *testing.T) {
	ep := sampleEvent()
	ep.Media = &eventpkg.EventMedia{Type: eventpkg.MediaTypeImagePNG, Data: "not-base64!!", Name: "x.png", Size: 1}
	_, err := Package(ep)
	assert.Error(t, err)
}
