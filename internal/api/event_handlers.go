package api

import (
	"net/http"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/logger"
	"github.com/adorsys-gis/eventrelay/internal/middleware"
	"github.com/adorsys-gis/eventrelay/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandlers groups the event-ingestion endpoints that sit behind the
// auth middleware and depend on a verified EventPackage.
type EventHandlers struct {
	store *storage.Store
	cache *storage.ExistenceCache
}

// NewEventHandlers constructs the event handler group.
func NewEventHandlers(store *storage.Store, cache *storage.ExistenceCache) *EventHandlers {
	return &EventHandlers{store: store, cache: cache}
}

// uploadResult is what the two event-ingestion endpoints share: the
// packaged archive, the effective event ID (generated if the inbound
// EventPackage omitted one), and the storage key it was written under.
type uploadResult struct {
	packaged storage.PackagedEvent
	eventID  string
	key      string
}

// uploadEvent packages and uploads the verified EventPackage the auth
// middleware attached to the request context.
func (h *EventHandlers) uploadEvent(c *gin.Context) (uploadResult, bool) {
	ep, ok := middleware.GetEventPackage(c)
	if !ok {
		apperrors.AbortWithError(c, apperrors.BadRequest("request did not carry a verified event payload"))
		return uploadResult{}, false
	}

	eventID := ep.ID
	if eventID == "" {
		eventID = uuid.NewString()
		ep.ID = eventID
	}

	packaged, err := storage.Package(ep)
	if err != nil {
		apperrors.AbortWithError(c, apperrors.Internal("failed to package event"))
		return uploadResult{}, false
	}

	key := storage.EventObjectKey(time.Now().UTC(), packaged.EventHash)
	if err := h.store.PutObject(c.Request.Context(), key, packaged.Bytes, "application/zip"); err != nil {
		logger.Storage().Error().Err(err).Str("key", key).Msg("failed to upload packaged event")
		apperrors.AbortWithError(c, apperrors.Internal("failed to store event"))
		return uploadResult{}, false
	}

	h.cache.Set(c.Request.Context(), packaged.EventHash, true)
	return uploadResult{packaged: packaged, eventID: eventID, key: key}, true
}

// CreateEvent handles POST /api/v1/events.
func (h *EventHandlers) CreateEvent(c *gin.Context) {
	result, ok := h.uploadEvent(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventId":         result.eventID,
		"hash":            result.packaged.EventHash,
		"storageLocation": result.key,
		"processedAt":     time.Now().UTC(),
	})
}

// CreateEventPackage handles POST /api/v1/events/package.
func (h *EventHandlers) CreateEventPackage(c *gin.Context) {
	result, ok := h.uploadEvent(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "stored",
		"eventId":         result.eventID,
		"storageLocation": result.key,
		"zipSize":         result.packaged.Size,
		"processedAt":     time.Now().UTC(),
	})
}

// VerifyEventHash handles GET /api/v1/events/:hash/verify. The existence
// check is advisory: it reports what the current month's key looks like,
// optionally through the existence cache, and does not scan prior months.
func (h *EventHandlers) VerifyEventHash(c *gin.Context) {
	hash := c.Param("hash")
	if len(hash) != 64 {
		apperrors.AbortWithError(c, apperrors.BadRequest("hash must be 64 hex characters"))
		return
	}

	if cached, found := h.cache.Get(c.Request.Context(), hash); found {
		c.JSON(http.StatusOK, gin.H{"hash": hash, "exists": cached, "timestamp": time.Now().UTC()})
		return
	}

	key := storage.EventObjectKey(time.Now().UTC(), hash)
	exists, err := h.store.ObjectExists(c.Request.Context(), key)
	if err != nil {
		apperrors.AbortWithError(c, apperrors.Internal("failed to check object existence"))
		return
	}

	h.cache.Set(c.Request.Context(), hash, exists)
	c.JSON(http.StatusOK, gin.H{"hash": hash, "exists": exists, "timestamp": time.Now().UTC()})
}
