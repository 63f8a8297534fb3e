package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	quotadto "facturo/internal/application/quota/dto"
	"facturo/internal/application/resource/dto"
	"facturo/internal/application/resource/usecases"
	"facturo/internal/domain/quota"
	"facturo/internal/shared/logger"
	"facturo/internal/shared/utils"
)

type ResourceHandler struct {
	createResourceUC     *usecases.CreateResourceUseCase
	deactivateResourceUC *usecases.DeactivateResourceUseCase
	reactivateResourceUC *usecases.ReactivateResourceUseCase
	listResourcesUC      *usecases.ListResourcesUseCase
	logger               logger.Interface
}

func NewResourceHandler(
	createResourceUC *usecases.CreateResourceUseCase,
	deactivateResourceUC *usecases.DeactivateResourceUseCase,
	reactivateResourceUC *usecases.ReactivateResourceUseCase,
	listResourcesUC *usecases.ListResourcesUseCase,
) *ResourceHandler {
	return &ResourceHandler{
		createResourceUC:     createResourceUC,
		deactivateResourceUC: deactivateResourceUC,
		reactivateResourceUC: reactivateResourceUC,
		listResourcesUC:      listResourcesUC,
		logger:               logger.NewLogger(),
	}
}

type createResourceBody struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// CreateResource handles POST /companies/:companyID/:resourceType
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	var body createResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warnw("invalid request body for create resource", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.createResourceUC.Execute(c.Request.Context(), dto.CreateResourceRequest{
		CompanyID:    companyID,
		ResourceType: c.Param("resourceType"),
		Name:         body.Name,
		Code:         body.Code,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListResources handles GET /companies/:companyID/:resourceType
func (h *ResourceHandler) ListResources(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"

	result, err := h.listResourcesUC.Execute(c.Request.Context(), companyID, c.Param("resourceType"), includeInactive)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// DeactivateResource handles DELETE /companies/:companyID/:resourceType/:resourceID
func (h *ResourceHandler) DeactivateResource(c *gin.Context) {
	resourceID, ok := h.resourceID(c)
	if !ok {
		return
	}

	result, err := h.deactivateResourceUC.Execute(c.Request.Context(), c.Param("resourceType"), resourceID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ReactivateResource handles POST /companies/:companyID/:resourceType/:resourceID/reactivate
func (h *ResourceHandler) ReactivateResource(c *gin.Context) {
	resourceID, ok := h.resourceID(c)
	if !ok {
		return
	}

	result, err := h.reactivateResourceUC.Execute(c.Request.Context(), c.Param("resourceType"), resourceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// respondError maps use case errors. An exhausted quota is an expected
// business outcome: 409 with the observed count and limit in the payload so
// the client can render the exact numbers.
func (h *ResourceHandler) respondError(c *gin.Context, err error) {
	if exceeded, ok := quota.AsExceeded(err); ok {
		utils.ErrorResponseWithData(c, http.StatusConflict, exceeded.Error(), &quotadto.LimitInfoDTO{
			Count: exceeded.Count,
			Limit: exceeded.Limit,
		})
		return
	}
	utils.AppErrorResponse(c, err)
}

func (h *ResourceHandler) companyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("companyID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid company ID")
		return 0, false
	}
	return uint(id), true
}

func (h *ResourceHandler) resourceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("resourceID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid resource ID")
		return 0, false
	}
	return uint(id), true
}
