package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"facturo/internal/application/quota/usecases"
	"facturo/internal/shared/logger"
	"facturo/internal/shared/utils"
)

// LimitInfoHandler serves the advisory {count, limit} projection that UIs
// poll before offering a create action. Backend trouble never surfaces here;
// the use case degrades to the fail-open default instead.
type LimitInfoHandler struct {
	getLimitInfoUC *usecases.GetLimitInfoUseCase
	logger         logger.Interface
}

func NewLimitInfoHandler(getLimitInfoUC *usecases.GetLimitInfoUseCase) *LimitInfoHandler {
	return &LimitInfoHandler{
		getLimitInfoUC: getLimitInfoUC,
		logger:         logger.NewLogger(),
	}
}

// GetLimitInfo handles GET /companies/:companyID/:resourceType/limit-info
func (h *LimitInfoHandler) GetLimitInfo(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("companyID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, 400, "invalid company ID")
		return
	}

	info, err := h.getLimitInfoUC.Execute(c.Request.Context(), uint(companyID), c.Param("resourceType"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, info)
}
