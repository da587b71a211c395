package handlers

import (
	"net/http"

	"authsvc"
	"authsvc/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List public APIs
// @Description  Proxies the public API directory. category matches case-insensitively; a non-numeric limit is ignored.
// @Tags         apis
// @Produce      json
// @Param        category  query     string   false  "Filter by category"  example(Animals)
// @Param        limit     query     integer  false  "Maximum number of entries"
// @Success      200       {object}  authsvc.Response  "result is a list of models.PublicEntry"
// @Failure      500       {object}  authsvc.Response
// @Router       /auth/apis [get]
func (h *Handler) listPublicAPIs(c *gin.Context) {
	filter := service.EntryFilter{
		Category: c.Query("category"),
		Limit:    service.ParseLimit(c.Query("limit")),
	}

	entries, err := h.services.PublicAPI.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, "publicapi_fetch_failed", err, "category", filter.Category)
		return
	}

	c.JSON(http.StatusOK, authsvc.Success(entries))
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  authsvc.Response
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, authsvc.Success(authsvc.Message{Message: "ok"}))
}
