package admission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/category"
	"github.com/flowforge/diskgate/pkg/eventbus"
	"github.com/flowforge/diskgate/pkg/metrics"
	"github.com/flowforge/diskgate/pkg/model"
	"github.com/flowforge/diskgate/pkg/mountflag"
)

// CategoryStore persists category membership across restarts.
type CategoryStore interface {
	Append(ctx context.Context, label string, ref uuid.UUID) error
	// Load returns persisted categories in creation order.
	Load(ctx context.Context) ([]category.Summary, error)
	Delete(ctx context.Context, label string) error
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event eventbus.Event) error
}

// Controller is the scheduler's entry point: it admits tasks against the
// policy and keeps the category registry up to date. store and bus are
// optional.
type Controller struct {
	gate     *Gate
	checker  mountflag.Checker
	registry *category.Registry
	policy   Policy
	store    CategoryStore
	bus      Publisher
	logger   *zap.Logger
}

func NewController(
	gate *Gate,
	checker mountflag.Checker,
	registry *category.Registry,
	policy Policy,
	store CategoryStore,
	bus Publisher,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		gate:     gate,
		checker:  checker,
		registry: registry,
		policy:   policy,
		store:    store,
		bus:      bus,
		logger:   logger,
	}
}

func (c *Controller) Gate() *Gate {
	return c.gate
}

func (c *Controller) Registry() *category.Registry {
	return c.registry
}

func (c *Controller) Checker() mountflag.Checker {
	return c.checker
}

func (c *Controller) Policy() Policy {
	return c.policy
}

// AdmitTask decides whether task may run given its output path, declared
// output size and category threshold. Denials are published on the event bus.
func (c *Controller) AdmitTask(ctx context.Context, task *model.Task) Decision {
	path := c.policy.PathFor(task)
	threshold := c.policy.ThresholdFor(task.Category)

	var d Decision
	if c.policy.RequiredFlags != 0 && !c.checker.HasFlags(path, c.policy.RequiredFlags) {
		d = Decision{
			Reason:       ReasonMountFlags,
			Path:         path,
			PendingBytes: task.OutputSizeBytes,
			Threshold:    threshold,
			Message:      fmt.Sprintf("filesystem backing %s lacks mount flags %s", path, c.policy.RequiredFlags),
		}
		c.logger.Info("admission denied",
			zap.String("task_id", task.ID.String()),
			zap.String("path", path),
			zap.String("reason", string(d.Reason)),
			zap.String("required_flags", c.policy.RequiredFlags.String()),
		)
		record(d)
	} else {
		// Probe errors are logged by the gate and reflected in the decision.
		d, _ = c.gate.Evaluate(path, task.OutputSizeBytes, threshold)
	}

	// Only categories created through AssignCategory or restored from the
	// store carry stats; arbitrary labels from the request never grow the
	// registry or the metric label set.
	if cat, ok := c.registry.Get(task.Category); ok {
		cat.RecordAdmission(d.Admitted)
		metrics.CategoryAdmissions.WithLabelValues(cat.Label(), metrics.ResultLabel(d.Admitted)).Inc()
	}

	if !d.Admitted {
		c.publishDenial(ctx, task, d)
	}
	return d
}

// AssignCategory appends taskID to the named category, creating it if
// needed. The in-memory registry is always updated; an error means only the
// persisted copy is behind.
func (c *Controller) AssignCategory(ctx context.Context, label string, taskID uuid.UUID) (*category.Category, error) {
	cat := c.registry.Add(label, taskID)
	members := cat.Len()
	metrics.CategoryMembers.WithLabelValues(label).Set(float64(members))

	if c.store != nil {
		if err := c.store.Append(ctx, label, taskID); err != nil {
			c.logger.Error("failed to persist category membership",
				zap.String("category", label), zap.String("task_id", taskID.String()), zap.Error(err))
			return cat, err
		}
	}

	c.publish(ctx, eventbus.ChannelCategory, eventbus.EventCategoryMember, eventbus.CategoryEvent{
		Category: label,
		TaskID:   taskID.String(),
		Members:  members,
	})
	return cat, nil
}

// RemoveCategory drops a category from the registry and the store.
func (c *Controller) RemoveCategory(ctx context.Context, label string) (bool, error) {
	if !c.registry.Remove(label) {
		return false, nil
	}
	metrics.CategoryMembers.DeleteLabelValues(label)

	if c.store != nil {
		if err := c.store.Delete(ctx, label); err != nil {
			return true, err
		}
	}
	return true, nil
}

// RestoreCategories reloads persisted membership into the registry.
func (c *Controller) RestoreCategories(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	loaded, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	for _, saved := range loaded {
		cat := c.registry.Restore(saved.Label, saved.Members)
		metrics.CategoryMembers.WithLabelValues(saved.Label).Set(float64(cat.Len()))
	}

	c.logger.Info("restored task categories", zap.Int("categories", len(loaded)))
	return nil
}

func (c *Controller) publishDenial(ctx context.Context, task *model.Task, d Decision) {
	ev := eventbus.AdmissionEvent{
		TaskID:         task.ID.String(),
		Category:       task.Category,
		Path:           d.Path,
		Reason:         string(d.Reason),
		PendingBytes:   d.PendingBytes,
		ThresholdBytes: d.Threshold,
		Message:        d.Message,
	}
	if task.WorkflowID != uuid.Nil {
		ev.WorkflowID = task.WorkflowID.String()
	}
	if d.Sample != nil {
		ev.AvailableBytes = d.Sample.AvailableBytes
	}
	c.publish(ctx, eventbus.ChannelAdmission, eventbus.EventAdmissionDenied, ev)
}

func (c *Controller) publish(ctx context.Context, channel, eventType string, payload interface{}) {
	if c.bus == nil {
		return
	}
	event, err := eventbus.NewEvent(eventType, payload)
	if err == nil {
		err = c.bus.Publish(ctx, channel, event)
	}
	if err != nil {
		metrics.EventPublishFailures.Inc()
		c.logger.Warn("failed to publish event", zap.String("channel", channel), zap.String("type", eventType), zap.Error(err))
	}
}
