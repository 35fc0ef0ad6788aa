package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"eventbooking/internal/cache"
	"eventbooking/internal/config"
	"eventbooking/internal/domain/event"
	"eventbooking/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const listCacheKey = "events:list"

type EventsStore interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventsHandler struct {
	repo     EventsStore
	uploader media.Uploader
	bucket   string
	cache    cache.Store
}

func NewEventsHandler(repo EventsStore, uploader media.Uploader, bucket string) *EventsHandler {
	return &EventsHandler{repo: repo, uploader: uploader, bucket: bucket}
}

func NewEventsHandlerWithCache(repo EventsStore, uploader media.Uploader, bucket string, c cache.Store) *EventsHandler {
	return &EventsHandler{repo: repo, uploader: uploader, bucket: bucket, cache: c}
}

// CreateEvent accepts a multipart form: the event fields plus an "image"
// file part. The image is pushed to the media host first and its public URL
// stored on the record; normalization failures from the repo map to field
// level 4xx responses.
func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if err := ctx.ShouldBind(&req); err != nil {
		RespondBadRequest(ctx, "invalid_request", "Invalid form payload", gin.H{"reason": err.Error()})
		return
	}

	file, header, err := ctx.Request.FormFile("image")

	if err != nil {
		RespondBadRequest(ctx, "image_required", "an image file is required", nil)
		return
	}
	defer file.Close()

	cctx, cancel := config.WithTimeout(20 * time.Second)
	defer cancel()

	url, err := h.uploader.Upload(cctx, h.bucket, header.Filename, file)

	if err != nil {
		RespondError(ctx, http.StatusBadGateway, "media_upload_failed", "Could not store event image", nil)
		return
	}

	req.Image = url

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not create event")
		}
		return
	}

	h.invalidateListings(cctx)

	ctx.JSON(http.StatusCreated, created)
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if raw, ok, err := h.cache.Get(cctx, listCacheKey); err == nil && ok {
			RespondRawJSONWithETag(ctx, http.StatusOK, raw)
			return
		}
	}

	events, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	raw, err := json.Marshal(gin.H{
		"items": events,
		"count": len(events),
	})

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(cctx, listCacheKey, raw)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, raw)
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not fetch event")
		}
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not update event")
		}
		return
	}

	h.invalidateListings(cctx)

	ctx.JSON(http.StatusOK, updated)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not delete event")
		}
		return
	}

	h.invalidateListings(cctx)

	ctx.Status(http.StatusNoContent)
}

func (h *EventsHandler) invalidateListings(ctx context.Context) {
	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, "events:")
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
