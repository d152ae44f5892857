package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/platform"
	"github.com/unisave/unisave/internal/services/platforms"
	"github.com/unisave/unisave/internal/utils"
)

const defaultBatchLimit = 50

type BatchHandler struct {
	youtube *platforms.YouTube
}

func NewBatchHandler(youtube *platforms.YouTube) *BatchHandler {
	return &BatchHandler{youtube: youtube}
}

// Batch godoc
// @Summary List a playlist page
// @Description Flat-enumerate a playlist window. Only YouTube supports listing; other platforms are rejected.
// @Tags batch
// @Accept json
// @Produce json
// @Param request body models.BatchRequest true "Playlist URL with paging"
// @Success 200 {object} models.BatchResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/batch [post]
func (h *BatchHandler) Batch(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}
	if !isValidURL(req.URL) {
		errorResponse(c, utils.NewValidationError("Invalid URL format", map[string]interface{}{
			"url": req.URL,
		}))
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultBatchLimit
	}

	detected, ok := platform.Detect(req.URL)
	if !ok {
		errorResponse(c, utils.NewUnsupportedURLError(req.URL))
		return
	}

	// Only YouTube's listing supports flat enumeration.
	if detected != models.PlatformYouTube {
		errorResponse(c, utils.NewBatchNotSupportedError(string(detected)))
		return
	}

	utils.LogInfo(ctx, "Batch parsing playlist", utils.Fields{
		"url":    req.URL,
		"limit":  req.Limit,
		"offset": req.Offset,
	})

	page, err := h.youtube.ParsePlaylist(ctx, req.URL, req.Limit, req.Offset)
	if err != nil {
		utils.LogError(ctx, "Batch parse failed", err, utils.Fields{"url": req.URL})
		errorResponseFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BatchResponse{
		Success: true,
		Data:    *page,
	})
}
