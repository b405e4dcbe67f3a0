package handlers

import (
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"user-directory-service/storage"
)

// availableEndpoints is echoed on unmatched /api requests.
var availableEndpoints = []string{
	"GET /api/users",
	"GET /api/users/:id",
	"POST /api/users",
	"PUT /api/users/:id",
	"DELETE /api/users/:id",
	"GET /api/stats",
	"GET /health",
}

// SystemHandler serves the health, stats and welcome endpoints.
type SystemHandler struct {
	store     *storage.MemoryStore
	version   string
	startTime time.Time
}

func NewSystemHandler(store *storage.MemoryStore, version string) *SystemHandler {
	return &SystemHandler{
		store:     store,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *SystemHandler) uptime() float64 {
	return time.Since(h.startTime).Seconds()
}

// Health reports process liveness along with uptime and memory figures.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"uptime":    h.uptime(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"memory": gin.H{
			"allocBytes":      mem.Alloc,
			"totalAllocBytes": mem.TotalAlloc,
			"sysBytes":        mem.Sys,
			"numGC":           mem.NumGC,
		},
		"version": h.version,
	})
}

// Stats reports directory-level figures.
// GET /api/stats
func (h *SystemHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"totalUsers": h.store.Count(),
		"apiVersion": h.version,
		"uptime":     h.uptime(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// Welcome describes the API surface.
// GET /
func (h *SystemHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Welcome to the User Directory API",
		"version":   h.version,
		"endpoints": availableEndpoints,
	})
}

// NotFound answers every unmatched route. API paths get the endpoint
// listing; anything else gets a plain not-found body.
func NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{
			"error":              "API endpoint not found",
			"availableEndpoints": availableEndpoints,
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// respondInternalError writes a 500. Outside release mode the underlying
// error is attached to help local debugging; release mode stays generic.
func respondInternalError(c *gin.Context, err error) {
	body := gin.H{"error": "Internal server error"}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
