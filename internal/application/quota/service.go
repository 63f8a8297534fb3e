// Package quota wires the domain evaluator to live counts and plan limits.
// The Gate is the single enforcement point resource creation flows must pass.
package quota

import (
	"context"

	"facturo/internal/domain/company"
	"facturo/internal/domain/plan"
	"facturo/internal/domain/quota"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/logger"
)

// LimitsCache caches resolved limits documents per plan. Implementations are
// best-effort: a miss or a cache failure falls through to the repository.
type LimitsCache interface {
	GetLimits(ctx context.Context, planID uint) (map[string]int, bool)
	SetLimits(ctx context.Context, planID uint, limits map[string]int)
	Invalidate(ctx context.Context, planID uint)
}

// Gate combines plan limits with live counts into entitlement decisions.
// Check is the write-path enforcement point; Evaluate serves advisory reads.
type Gate struct {
	companies company.Repository
	plans     plan.Repository
	counter   resource.Counter
	cache     LimitsCache
	logger    logger.Interface
}

// NewGate creates the entitlement gate. cache may be nil.
func NewGate(
	companies company.Repository,
	plans plan.Repository,
	counter resource.Counter,
	cache LimitsCache,
	logger logger.Interface,
) *Gate {
	return &Gate{
		companies: companies,
		plans:     plans,
		counter:   counter,
		cache:     cache,
		logger:    logger,
	}
}

// Check runs the write-path quota check. It must be called inside the same
// transaction as the subsequent row insert; the locking counter serializes
// concurrent creations for the company so two requests cannot both take the
// last free slot. On exhaustion it returns quota.ExceededError carrying the
// observed count and limit.
func (g *Gate) Check(ctx context.Context, companyID uint, resourceType resource.Type) (quota.Evaluation, error) {
	limit, err := g.resolveLimitFresh(ctx, companyID, resourceType.LimitKey())
	if err != nil {
		return quota.Evaluation{}, err
	}

	count, err := g.counter.CountActiveForUpdate(ctx, companyID, resourceType)
	if err != nil {
		g.logger.Errorw("failed to count active resources for quota check",
			"error", err, "company_id", companyID, "resource_type", resourceType)
		return quota.Evaluation{}, err
	}

	eval := quota.Evaluate(count, limit)
	if !eval.Allowed {
		return eval, quota.NewExceededError(resourceType.String(), eval.Count, eval.Limit)
	}
	return eval, nil
}

// Evaluate runs the advisory read-path evaluation. It takes no locks and may
// observe slightly stale counts; callers on the limit-info path convert any
// error into the fail-open default.
func (g *Gate) Evaluate(ctx context.Context, companyID uint, resourceType resource.Type) (quota.Evaluation, error) {
	limit, err := g.resolveLimitCached(ctx, companyID, resourceType.LimitKey())
	if err != nil {
		return quota.Evaluation{}, err
	}

	count, err := g.counter.CountActive(ctx, companyID, resourceType)
	if err != nil {
		return quota.Evaluation{}, err
	}

	return quota.Evaluate(count, limit), nil
}

// resolveLimitFresh loads the plan through the repository, joining any
// transaction in the context. The gate never trusts the cache: a stale cap
// must not leak into an enforcement decision.
func (g *Gate) resolveLimitFresh(ctx context.Context, companyID uint, key plan.LimitKey) (int, error) {
	c, err := g.companies.GetByID(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, company.ErrCompanyNotFound
	}

	p, err := g.plans.GetByID(ctx, c.PlanID())
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, plan.ErrPlanNotFound
	}

	return g.limitFromDocument(p.Limits(), key, c.PlanID()), nil
}

// resolveLimitCached consults the limits cache before the repository.
func (g *Gate) resolveLimitCached(ctx context.Context, companyID uint, key plan.LimitKey) (int, error) {
	c, err := g.companies.GetByID(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, company.ErrCompanyNotFound
	}

	if g.cache != nil {
		if raw, ok := g.cache.GetLimits(ctx, c.PlanID()); ok {
			doc := plan.NewLimitsDocumentFromRaw(raw)
			return g.limitFromDocument(doc, key, c.PlanID()), nil
		}
	}

	p, err := g.plans.GetByID(ctx, c.PlanID())
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, plan.ErrPlanNotFound
	}

	if g.cache != nil {
		g.cache.SetLimits(ctx, c.PlanID(), p.Limits().Values())
	}
	return g.limitFromDocument(p.Limits(), key, c.PlanID()), nil
}

// limitFromDocument resolves one key and flags invalid plan data. Bad values
// are clamped by the evaluator; they only warrant operator attention here.
func (g *Gate) limitFromDocument(doc *plan.LimitsDocument, key plan.LimitKey, planID uint) int {
	limit := doc.Resolve(key)
	if !quota.IsValidLimit(limit) {
		g.logger.Warnw("invalid plan limit value, clamping to unlimited",
			"plan_id", planID, "limit_key", key, "value", limit)
	}
	return limit
}
