package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquota "facturo/internal/application/quota"
	quotausecases "facturo/internal/application/quota/usecases"
	"facturo/internal/domain/plan"
	"facturo/internal/domain/resource"
	"facturo/internal/interfaces/http/handlers/testutil"
	"facturo/internal/shared/logger"
)

type failingCounter struct{ err error }

func (c *failingCounter) CountActive(ctx context.Context, companyID uint, rt resource.Type) (int, error) {
	return 0, c.err
}
func (c *failingCounter) CountActiveForUpdate(ctx context.Context, companyID uint, rt resource.Type) (int, error) {
	return 0, c.err
}

func newLimitInfoHandler(t *testing.T, store *handlerStore, counter resource.Counter) *LimitInfoHandler {
	t.Helper()
	log := logger.NewLogger()
	gate := appquota.NewGate(
		&handlerCompanyRepo{store: store},
		&handlerPlanRepo{store: store},
		counter,
		nil,
		log,
	)
	return NewLimitInfoHandler(quotausecases.NewGetLimitInfoUseCase(gate, log))
}

func TestGetLimitInfoHandler(t *testing.T) {
	store := newHandlerStore(t, map[plan.LimitKey]int{plan.LimitMaxWarehouses: 4}, 3)
	h := newLimitInfoHandler(t, store, &handlerCounter{store: store})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/companies/1/warehouse/limit-info", nil)
	testutil.SetURLParam(c, "companyID", "1")
	testutil.SetURLParam(c, "resourceType", "warehouse")

	h.GetLimitInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var payload struct {
		Count int `json:"count"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.Equal(t, 3, payload.Count)
	assert.Equal(t, 4, payload.Limit)
}

func TestGetLimitInfoHandler_FailsOpenOnBackendError(t *testing.T) {
	store := newHandlerStore(t, map[plan.LimitKey]int{plan.LimitMaxWarehouses: 4}, 0)
	h := newLimitInfoHandler(t, store, &failingCounter{err: errors.New("connection refused")})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/companies/1/warehouse/limit-info", nil)
	testutil.SetURLParam(c, "companyID", "1")
	testutil.SetURLParam(c, "resourceType", "warehouse")

	h.GetLimitInfo(c)

	assert.Equal(t, http.StatusOK, w.Code, "read path must degrade, not error")

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var payload struct {
		Count int `json:"count"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.Equal(t, 0, payload.Count)
	assert.Equal(t, -1, payload.Limit)
}

func TestGetLimitInfoHandler_InvalidResourceType(t *testing.T) {
	store := newHandlerStore(t, nil, 0)
	h := newLimitInfoHandler(t, store, &handlerCounter{store: store})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/companies/1/invoice/limit-info", nil)
	testutil.SetURLParam(c, "companyID", "1")
	testutil.SetURLParam(c, "resourceType", "invoice")

	h.GetLimitInfo(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLimitInfoHandler_InvalidCompanyID(t *testing.T) {
	store := newHandlerStore(t, nil, 0)
	h := newLimitInfoHandler(t, store, &handlerCounter{store: store})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/companies/zero/warehouse/limit-info", nil)
	testutil.SetURLParam(c, "companyID", "zero")
	testutil.SetURLParam(c, "resourceType", "warehouse")

	h.GetLimitInfo(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
