package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/flowforge/diskgate/pkg/capacity"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// probeStatus maps a capacity probe error to an HTTP status.
func probeStatus(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, capacity.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

type sampleResponse struct {
	Path           string  `json:"path"`
	AvailableBytes uint64  `json:"available_bytes"`
	TotalBytes     uint64  `json:"total_bytes"`
	UsedPercent    float64 `json:"used_percent"`
	Available      string  `json:"available"`
	Total          string  `json:"total"`
}

func newSampleResponse(s capacity.Sample) sampleResponse {
	return sampleResponse{
		Path:           s.Path,
		AvailableBytes: s.AvailableBytes,
		TotalBytes:     s.TotalBytes,
		UsedPercent:    s.UsedPercent(),
		Available:      humanize.IBytes(s.AvailableBytes),
		Total:          humanize.IBytes(s.TotalBytes),
	}
}
