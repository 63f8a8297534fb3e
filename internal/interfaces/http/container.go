package http

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	planusecases "facturo/internal/application/plan/usecases"
	appquota "facturo/internal/application/quota"
	quotausecases "facturo/internal/application/quota/usecases"
	resourceusecases "facturo/internal/application/resource/usecases"
	"facturo/internal/infrastructure/cache"
	"facturo/internal/infrastructure/config"
	"facturo/internal/infrastructure/repository"
	"facturo/internal/interfaces/http/handlers"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

// Container wires repositories, the entitlement gate, use cases, and
// handlers. redisClient may be nil; the plan limits cache then stays off and
// every read goes to the database.
type Container struct {
	Handlers Handlers
}

// NewContainer builds the full dependency graph.
func NewContainer(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	txManager := db.NewTransactionManager(database)

	planRepo := repository.NewPlanRepository(database, log)
	companyRepo := repository.NewCompanyRepository(database, log)
	resourceRepo := repository.NewResourceRepository(database, log)
	counterRepo := repository.NewResourceCounterRepository(database, log)

	var limitsCache appquota.LimitsCache
	if redisClient != nil {
		ttl := time.Duration(cfg.Quota.LimitsCacheTTLMinutes) * time.Minute
		limitsCache = cache.NewRedisPlanLimitsCache(redisClient, ttl, log)
	}

	gate := appquota.NewGate(companyRepo, planRepo, counterRepo, limitsCache, log)

	getLimitInfoUC := quotausecases.NewGetLimitInfoUseCase(gate, log)
	createResourceUC := resourceusecases.NewCreateResourceUseCase(txManager, gate, resourceRepo, log)
	deactivateResourceUC := resourceusecases.NewDeactivateResourceUseCase(resourceRepo, log)
	reactivateResourceUC := resourceusecases.NewReactivateResourceUseCase(txManager, gate, resourceRepo, log)
	listResourcesUC := resourceusecases.NewListResourcesUseCase(resourceRepo, log)
	getPlanUC := planusecases.NewGetPlanUseCase(planRepo, log)
	listPlansUC := planusecases.NewListPlansUseCase(planRepo, log)
	updatePlanLimitsUC := planusecases.NewUpdatePlanLimitsUseCase(planRepo, limitsCache, log)
	deletePlanUC := planusecases.NewDeletePlanUseCase(planRepo, companyRepo, limitsCache, log)

	return &Container{
		Handlers: Handlers{
			Plan:      handlers.NewPlanHandler(getPlanUC, listPlansUC, updatePlanLimitsUC, deletePlanUC),
			Resource:  handlers.NewResourceHandler(createResourceUC, deactivateResourceUC, reactivateResourceUC, listResourcesUC),
			LimitInfo: handlers.NewLimitInfoHandler(getLimitInfoUC),
		},
	}
}
