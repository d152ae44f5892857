package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/resolver"
	"github.com/unisave/unisave/internal/utils"
)

type StreamHandler struct {
	resolver *resolver.Resolver
}

func NewStreamHandler(res *resolver.Resolver) *StreamHandler {
	return &StreamHandler{resolver: res}
}

// Stream godoc
// @Summary Resolve and deliver a chosen format
// @Description Redirects to the direct media URL, or streams a locally merged file as an attachment for composite formats.
// @Tags stream
// @Produce json
// @Param streamId path string true "Parse session id"
// @Param videoUrl query string true "Original content URL"
// @Param formatId query string false "Format identifier from the parse response"
// @Success 302 {string} string "Redirect to the direct media URL"
// @Success 200 {file} binary "Merged file download"
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/stream/{streamId} [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	videoURL := c.Query("videoUrl")
	if videoURL == "" {
		errorResponse(c, utils.NewMissingURLError())
		return
	}
	formatID := c.DefaultQuery("formatId", "best")

	utils.LogInfo(ctx, "Stream request", utils.Fields{
		"stream_id": c.Param("streamId"),
		"format":    formatID,
	})

	resolution, err := h.resolver.Resolve(ctx, videoURL, formatID)
	if err != nil {
		utils.LogError(ctx, "Stream resolution failed", err)
		errorResponse(c, streamError(err))
		return
	}

	if resolution.FilePath != "" {
		// Merged download: stream the temp file and remove it once the
		// response is fully written, error or not.
		defer func() {
			if rmErr := os.Remove(resolution.FilePath); rmErr != nil {
				utils.LogWarn(ctx, "Failed to remove temp file", utils.Fields{
					"path":  resolution.FilePath,
					"error": rmErr.Error(),
				})
			}
		}()
		c.FileAttachment(resolution.FilePath, "video.mp4")
		return
	}

	c.Redirect(http.StatusFound, resolution.URL)
}

// StreamURL godoc
// @Summary Resolve a chosen format to a URL
// @Description Same resolution as the stream endpoint but returns the direct URL as JSON instead of redirecting. Never downloads locally.
// @Tags stream
// @Produce json
// @Param streamId path string true "Parse session id"
// @Param videoUrl query string true "Original content URL"
// @Param formatId query string false "Format identifier from the parse response"
// @Success 200 {object} models.StreamURLResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/stream/url/{streamId} [get]
func (h *StreamHandler) StreamURL(c *gin.Context) {
	ctx := c.Request.Context()

	videoURL := c.Query("videoUrl")
	if videoURL == "" {
		errorResponse(c, utils.NewMissingURLError())
		return
	}
	formatID := c.DefaultQuery("formatId", "best")

	utils.LogInfo(ctx, "Stream URL request", utils.Fields{
		"stream_id": c.Param("streamId"),
		"format":    formatID,
	})

	directURL, err := h.resolver.ResolveURL(ctx, videoURL, formatID)
	if err != nil {
		utils.LogError(ctx, "URL resolution failed", err)
		errorResponse(c, streamError(err))
		return
	}

	c.JSON(http.StatusOK, models.StreamURLResponse{
		Success: true,
		URL:     directURL,
	})
}

// streamError collapses any resolution failure to the STREAM_ERROR code
// while keeping the underlying message.
func streamError(err error) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return utils.NewStreamError(appErr.Message)
	}
	return utils.NewStreamError(err.Error())
}
