package model

import "github.com/google/uuid"

// Task is the scheduler's view of a DAG node awaiting admission. Only the
// fields admission control reads are carried here.
type Task struct {
	ID         uuid.UUID `json:"id"`
	WorkflowID uuid.UUID `json:"workflow_id"`
	Name       string    `json:"name"`
	// Category is the resource class the scheduler assigned, if any.
	Category string `json:"category,omitempty"`
	// OutputPath is where the task writes; empty means the configured default.
	OutputPath string `json:"output_path,omitempty"`
	// OutputSizeBytes is the expected output size. Zero or negative means unknown.
	OutputSizeBytes int64 `json:"output_size_bytes"`
}
