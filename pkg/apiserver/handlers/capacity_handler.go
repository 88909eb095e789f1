package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/capacity"
	"github.com/flowforge/diskgate/pkg/mountflag"
)

type CapacityHandler struct {
	prober  capacity.Prober
	checker mountflag.Checker
	logger  *zap.Logger
}

func NewCapacityHandler(prober capacity.Prober, checker mountflag.Checker, logger *zap.Logger) *CapacityHandler {
	return &CapacityHandler{prober: prober, checker: checker, logger: logger}
}

// Get probes ?path= and returns its capacity.
func (h *CapacityHandler) Get(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, http.StatusBadRequest, "path is required")
		return
	}

	sample, err := h.prober.Probe(path)
	if err != nil {
		h.logger.Warn("capacity probe failed", zap.String("path", path), zap.Error(err))
		respondError(c, probeStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, newSampleResponse(sample))
}

// MountFlags reports whether the mount backing ?path= has every flag in
// ?flags= (names such as "ro,nosuid" or a numeric mask).
func (h *CapacityHandler) MountFlags(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, http.StatusBadRequest, "path is required")
		return
	}

	required, err := mountflag.Parse(c.Query("flags"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp := gin.H{
		"path":      path,
		"required":  required.String(),
		"has_flags": h.checker.HasFlags(path, required),
		"supported": mountflag.Supported,
	}
	if observed, err := mountflag.Observe(path); err == nil {
		resp["observed"] = observed.String()
	}
	c.JSON(http.StatusOK, resp)
}
