package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventObjectKey(t *testing.T) {
	ts := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	key := EventObjectKey(ts, "abc123")
	assert.Equal(t, "events/2026/03/abc123.zip", key)
}

func TestMediaObjectKey(t *testing.T) {
	ts := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	key := MediaObjectKey(ts, "eventhash", "mediahash", "jpg")
	assert.Equal(t, "media/2026/11/eventhash/mediahash.jpg", key)
}
