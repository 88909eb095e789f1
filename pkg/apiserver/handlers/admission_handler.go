package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/admission"
	"github.com/flowforge/diskgate/pkg/model"
)

type AdmissionHandler struct {
	controller *admission.Controller
	logger     *zap.Logger
}

func NewAdmissionHandler(controller *admission.Controller, logger *zap.Logger) *AdmissionHandler {
	return &AdmissionHandler{controller: controller, logger: logger}
}

type evaluateRequest struct {
	Path              string  `json:"path" binding:"required"`
	PendingWriteBytes int64   `json:"pending_write_bytes"`
	ThresholdBytes    *uint64 `json:"threshold_bytes"`
	Threshold         string  `json:"threshold"`
}

// Evaluate runs the gate for an explicit path, size and threshold. When
// neither threshold field is set the configured default applies.
func (h *AdmissionHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	threshold := h.controller.Policy().Threshold
	switch {
	case req.ThresholdBytes != nil:
		threshold = *req.ThresholdBytes
	case req.Threshold != "":
		v, err := admission.ParseThreshold(req.Threshold)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid threshold: "+err.Error())
			return
		}
		threshold = v
	}

	// A probe failure is a denial, reported in the decision body.
	decision, _ := h.controller.Gate().Evaluate(req.Path, req.PendingWriteBytes, threshold)
	c.JSON(http.StatusOK, decision)
}

// AdmitTask runs the full task admission: path and threshold come from the
// policy, mount flags are checked, and category stats are updated.
func (h *AdmissionHandler) AdmitTask(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if task.ID == uuid.Nil {
		respondError(c, http.StatusBadRequest, "task id is required")
		return
	}

	decision := h.controller.AdmitTask(c.Request.Context(), &task)
	c.JSON(http.StatusOK, decision)
}
