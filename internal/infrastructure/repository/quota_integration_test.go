package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquota "facturo/internal/application/quota"
	resourcedto "facturo/internal/application/resource/dto"
	resourceusecases "facturo/internal/application/resource/usecases"
	"facturo/internal/domain/plan"
	"facturo/internal/domain/quota"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

// Drives concurrent creations through the real gate, transaction manager and
// repositories, not in-memory fakes: with k free slots, exactly k of the
// racing requests may win. SQLite cannot take row locks, so transactions are
// pinned to one connection to serialize them; the MySQL serialization itself
// is covered by TestCountActiveForUpdate_BothReadsLock.
func TestCreateResource_ConcurrentRequestsNeverOversubscribe(t *testing.T) {
	database := setupTestDB(t)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	log := logger.NewLogger()
	planRepo := NewPlanRepository(database, log)
	companyRepo := NewCompanyRepository(database, log)
	resourceRepo := NewResourceRepository(database, log)
	counterRepo := NewResourceCounterRepository(database, log)

	p := createTestPlan(t, "Pyme", "pyme", map[plan.LimitKey]int{plan.LimitMaxSellers: 3})
	require.NoError(t, planRepo.Create(context.Background(), p))
	c := seedCompany(t, database, p.ID())

	gate := appquota.NewGate(companyRepo, planRepo, counterRepo, nil, log)
	uc := resourceusecases.NewCreateResourceUseCase(db.NewTransactionManager(database), gate, resourceRepo, log)

	const attempts = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), resourcedto.CreateResourceRequest{
				CompanyID:    c.ID(),
				ResourceType: "seller",
				Name:         "Vendedor",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			default:
				if _, ok := quota.AsExceeded(err); !ok {
					t.Errorf("unexpected error: %v", err)
					return
				}
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, created)
	assert.Equal(t, attempts-3, rejected)

	count, err := counterRepo.CountActive(context.Background(), c.ID(), resource.TypeSeller)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
