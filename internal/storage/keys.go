// Package storage implements the object-store key scheme, ZIP packaging,
// S3/MinIO client, and optional existence cache that sit downstream of the
// authentication core.
package storage

import (
	"fmt"
	"time"
)

// EventObjectKey returns the object-store key for a packaged event:
// events/<YYYY>/<MM>/<event_hash>.zip.
func EventObjectKey(uploadTime time.Time, eventHash string) string {
	return fmt.Sprintf("events/%04d/%02d/%s.zip", uploadTime.Year(), uploadTime.Month(), eventHash)
}

// MediaObjectKey returns the object-store key for inline media:
// media/<YYYY>/<MM>/<event_hash>/<media_hash>.<ext>.
func MediaObjectKey(uploadTime time.Time, eventHash, mediaHash, ext string) string {
	return fmt.Sprintf("media/%04d/%02d/%s/%s.%s", uploadTime.Year(), uploadTime.Month(), eventHash, mediaHash, ext)
}
