package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/platform"
	"github.com/unisave/unisave/internal/services/platforms"
	"github.com/unisave/unisave/internal/utils"
)

type ParseHandler struct {
	registry platforms.Registry
}

func NewParseHandler(registry platforms.Registry) *ParseHandler {
	return &ParseHandler{registry: registry}
}

// Parse godoc
// @Summary Parse a media URL
// @Description Detect the platform of a content URL, run the extraction tool, and return the normalized format list.
// @Tags parse
// @Accept json
// @Produce json
// @Param request body models.ParseRequest true "Content URL and optional cookies"
// @Success 200 {object} models.ParseResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 501 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/parse [post]
func (h *ParseHandler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ParseRequest
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

	detected, ok := platform.Detect(req.URL)
	if !ok {
		errorResponse(c, utils.NewUnsupportedURLError(req.URL))
		return
	}

	utils.LogInfo(ctx, "Parsing content URL", utils.Fields{
		"platform": detected,
		"url":      req.URL,
	})

	parser, ok := h.registry.Lookup(detected)
	if !ok {
		errorResponse(c, utils.NewPlatformNotImplementedError(string(detected)))
		return
	}

	content, err := parser.Parse(ctx, req.URL, req.Cookies)
	if err != nil {
		utils.LogError(ctx, "Parse failed", err, utils.Fields{"url": req.URL})
		errorResponseFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ParseResponse{
		Success: true,
		Data: models.ParseData{
			ID:          uuid.New().String(),
			Platform:    detected,
			URL:         req.URL,
			ParsedVideo: *content,
		},
	})
}

func isValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
