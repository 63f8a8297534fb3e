package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facturo/internal/application/plan/usecases"
	"facturo/internal/shared/logger"
	"facturo/internal/shared/utils"
)

type PlanHandler struct {
	getPlanUC          *usecases.GetPlanUseCase
	listPlansUC        *usecases.ListPlansUseCase
	updatePlanLimitsUC *usecases.UpdatePlanLimitsUseCase
	deletePlanUC       *usecases.DeletePlanUseCase
	logger             logger.Interface
}

func NewPlanHandler(
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	updatePlanLimitsUC *usecases.UpdatePlanLimitsUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
) *PlanHandler {
	return &PlanHandler{
		getPlanUC:          getPlanUC,
		listPlansUC:        listPlansUC,
		updatePlanLimitsUC: updatePlanLimitsUC,
		deletePlanUC:       deletePlanUC,
		logger:             logger.NewLogger(),
	}
}

// ListPlans handles GET /plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	result, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// GetPlan handles GET /plans/:slug
func (h *PlanHandler) GetPlan(c *gin.Context) {
	result, err := h.getPlanUC.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type updatePlanLimitsBody struct {
	Limits map[string]int `json:"limits" binding:"required"`
}

// UpdatePlanLimits handles PUT /admin/plans/:slug/limits
func (h *PlanHandler) UpdatePlanLimits(c *gin.Context) {
	var body updatePlanLimitsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warnw("invalid request body for update plan limits", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.updatePlanLimitsUC.Execute(c.Request.Context(), usecases.UpdatePlanLimitsCommand{
		Slug:   c.Param("slug"),
		Limits: body.Limits,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// DeletePlan handles DELETE /admin/plans/:slug
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.deletePlanUC.Execute(c.Request.Context(), c.Param("slug")); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan deleted", nil)
}
