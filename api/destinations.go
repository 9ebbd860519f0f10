package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geovibes/geovibes/internal/catalog"
)

// featuredCount matches the landing page grid of the original frontend.
const featuredCount = 8

type DestinationHandler struct {
	catalog catalog.Catalog
}

func NewDestinationHandler(cat catalog.Catalog) *DestinationHandler {
	return &DestinationHandler{catalog: cat}
}

func (h *DestinationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/featured", h.featured)
	router.GET("/:id", h.get)
}

// list returns the catalog filtered by the optional category and search query
// parameters. No parameters returns the full catalog in its original order.
func (h *DestinationHandler) list(c *gin.Context) {
	destinations := h.catalog.Filter(c.Query("category"), c.Query("search"))
	c.JSON(http.StatusOK, destinations)
}

func (h *DestinationHandler) featured(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Featured(featuredCount))
}

func (h *DestinationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	dest, ok := h.catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "destination not found"})
		return
	}
	c.JSON(http.StatusOK, dest)
}
