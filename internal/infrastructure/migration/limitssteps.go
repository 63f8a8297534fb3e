package migration

import (
	"context"
	"fmt"

	"facturo/internal/domain/plan"
	"facturo/internal/shared/logger"
)

// LimitsStep is one named, reversible evolution of plan limits documents.
// Up and Down are pure functions from document to document; the migrator
// applies them to every plan row under the repository's version guard.
// Steps must be idempotent: applying Up to an already-migrated document
// returns it unchanged.
type LimitsStep struct {
	Name string
	Up   func(doc *plan.LimitsDocument) *plan.LimitsDocument
	Down func(doc *plan.LimitsDocument) *plan.LimitsDocument
}

// LimitsSteps returns the ordered registry of limits document steps.
func LimitsSteps() []LimitsStep {
	return []LimitsStep{
		{
			Name: "backfill_max_total_users",
			Up:   backfillMaxTotalUsersUp,
			Down: backfillMaxTotalUsersDown,
		},
	}
}

// backfillExpectedValue is the value the backfill writes for a document:
// the seller cap when present, otherwise unlimited. Down uses the same
// function to recognize values it is allowed to remove.
func backfillExpectedValue(doc *plan.LimitsDocument) int {
	if v, ok := doc.Get(plan.LimitMaxSellers); ok {
		return v
	}
	return plan.Unlimited
}

// backfillMaxTotalUsersUp materializes max_total_users on documents that
// predate the key. Documents that already carry it pass through untouched.
func backfillMaxTotalUsersUp(doc *plan.LimitsDocument) *plan.LimitsDocument {
	if doc.Has(plan.LimitMaxTotalUsers) {
		return doc
	}
	next := doc.Clone()
	next.Set(plan.LimitMaxTotalUsers, backfillExpectedValue(doc))
	return next
}

// backfillMaxTotalUsersDown removes max_total_users only when its value is
// exactly what Up would have written for the rest of the document. A value
// an operator changed since the backfill is real configuration and survives
// the rollback.
func backfillMaxTotalUsersDown(doc *plan.LimitsDocument) *plan.LimitsDocument {
	v, ok := doc.Get(plan.LimitMaxTotalUsers)
	if !ok {
		return doc
	}
	if v != backfillExpectedValue(doc) {
		return doc
	}
	next := doc.Clone()
	next.Remove(plan.LimitMaxTotalUsers)
	return next
}

// LimitsMigrator applies limits steps across all plan rows.
type LimitsMigrator struct {
	plans  plan.Repository
	logger logger.Interface
}

// NewLimitsMigrator creates a new limits migrator
func NewLimitsMigrator(plans plan.Repository, logger logger.Interface) *LimitsMigrator {
	return &LimitsMigrator{plans: plans, logger: logger}
}

// Up applies the named step's forward transformation to every plan.
func (m *LimitsMigrator) Up(ctx context.Context, name string) error {
	step, err := findLimitsStep(name)
	if err != nil {
		return err
	}
	return m.apply(ctx, step.Name, "up", step.Up)
}

// Down applies the named step's rollback transformation to every plan.
func (m *LimitsMigrator) Down(ctx context.Context, name string) error {
	step, err := findLimitsStep(name)
	if err != nil {
		return err
	}
	return m.apply(ctx, step.Name, "down", step.Down)
}

// UpAll applies every registered step in order. Steps are idempotent, so
// rerunning after a partial failure converges.
func (m *LimitsMigrator) UpAll(ctx context.Context) error {
	for _, step := range LimitsSteps() {
		if err := m.apply(ctx, step.Name, "up", step.Up); err != nil {
			return err
		}
	}
	return nil
}

func (m *LimitsMigrator) apply(ctx context.Context, name, direction string, fn func(*plan.LimitsDocument) *plan.LimitsDocument) error {
	plans, err := m.plans.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list plans for limits step %s: %w", name, err)
	}

	var migrated int
	for _, p := range plans {
		next := fn(p.Limits())
		changed, err := p.ReplaceLimits(next)
		if err != nil {
			return fmt.Errorf("limits step %s produced invalid document for plan %s: %w", name, p.Slug(), err)
		}
		if !changed {
			continue
		}
		if err := m.plans.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to persist limits step %s for plan %s: %w", name, p.Slug(), err)
		}
		migrated++
	}

	m.logger.Infow("limits step applied",
		"step", name,
		"direction", direction,
		"plans_total", len(plans),
		"plans_changed", migrated)

	return nil
}

func findLimitsStep(name string) (LimitsStep, error) {
	for _, step := range LimitsSteps() {
		if step.Name == name {
			return step, nil
		}
	}
	return LimitsStep{}, fmt.Errorf("unknown limits step: %s", name)
}
