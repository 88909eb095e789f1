package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/admission"
	"github.com/flowforge/diskgate/pkg/category"
)

type CategoryHandler struct {
	controller *admission.Controller
	logger     *zap.Logger
}

func NewCategoryHandler(controller *admission.Controller, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{controller: controller, logger: logger}
}

func (h *CategoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.controller.Registry().Snapshot()})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	label := c.Param("label")
	cat, ok := h.controller.Registry().Get(label)
	if !ok {
		respondError(c, http.StatusNotFound, category.ErrNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, category.Summary{
		Label:   cat.Label(),
		Members: cat.Members(),
		Stats:   cat.Stats(),
	})
}

type addMemberRequest struct {
	TaskID uuid.UUID `json:"task_id"`
}

// AddMember get-or-creates the category and appends the task reference.
func (h *CategoryHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.TaskID == uuid.Nil {
		respondError(c, http.StatusBadRequest, "task_id is required")
		return
	}

	label := c.Param("label")
	cat, err := h.controller.AssignCategory(c.Request.Context(), label, req.TaskID)
	if err != nil {
		// The registry already holds the member; only persistence lagged.
		h.logger.Warn("category membership not persisted", zap.String("category", label), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"label":   cat.Label(),
		"members": cat.Len(),
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	label := c.Param("label")
	removed, err := h.controller.RemoveCategory(c.Request.Context(), label)
	if err != nil {
		h.logger.Warn("category removal not persisted", zap.String("category", label), zap.Error(err))
	}
	if !removed {
		respondError(c, http.StatusNotFound, category.ErrNotFound.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
