package storage

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/eventpkg"
)

// PackagedEvent is the result of packaging one EventPackage into a ZIP
// archive, ready for upload.
type PackagedEvent struct {
	EventHash string
	Bytes     []byte
	Size      int
}

type manifest struct {
	EventID   string    `json:"eventId"`
	EventHash string    `json:"eventHash"`
	CreatedAt time.Time `json:"createdAt"`
	HasMedia  bool      `json:"hasMedia"`
}

// Package bundles ep into a ZIP archive: event.json (the compact JSON of the
// whole EventPackage; the event hash covers only a subset of its fields,
// see EventPackage.Hash), media/<name> when media
// is present, and a manifest.json summary. It performs no I/O beyond
// building the in-memory archive.
func Package(ep eventpkg.EventPackage) (PackagedEvent, error) {
	eventHash, err := ep.Hash()
	if err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to compute event hash")
	}

	eventJSON, err := json.Marshal(ep)
	if err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to serialize event package")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	eventWriter, err := w.Create("event.json")
	if err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to create archive entry")
	}
	if _, err := eventWriter.Write(eventJSON); err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to write archive entry")
	}

	if ep.Media != nil {
		mediaBytes, decodeErr := base64.StdEncoding.DecodeString(ep.Media.Data)
		if decodeErr != nil {
			return PackagedEvent{}, apperrors.Validation("invalid media data encoding")
		}
		mediaWriter, createErr := w.Create("media/" + ep.Media.Name)
		if createErr != nil {
			return PackagedEvent{}, apperrors.Internal("failed to create media archive entry")
		}
		if _, writeErr := mediaWriter.Write(mediaBytes); writeErr != nil {
			return PackagedEvent{}, apperrors.Internal("failed to write media archive entry")
		}
	}

	manifestJSON, err := json.Marshal(manifest{
		EventID:   ep.ID,
		EventHash: eventHash,
		CreatedAt: ep.Metadata.CreatedAt,
		HasMedia:  ep.Media != nil,
	})
	if err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to serialize manifest")
	}
	manifestWriter, err := w.Create("manifest.json")
	if err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to create manifest entry")
	}
	if _, err := manifestWriter.Write(manifestJSON); err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to write manifest entry")
	}

	if err := w.Close(); err != nil {
		return PackagedEvent{}, apperrors.Internal("failed to finalize archive")
	}

	return PackagedEvent{EventHash: eventHash, Bytes: buf.Bytes(), Size: buf.Len()}, nil
}
