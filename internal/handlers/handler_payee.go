package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

type payeeHandler struct {
	payeeService portssvc.PayeeSvcFacade
}

// registerPayeeRoutes registers routes related to payees
func registerPayeeRoutes(rg *gin.RouterGroup, payeeService portssvc.PayeeSvcFacade) {
	h := &payeeHandler{payeeService: payeeService}

	payees := rg.Group("/payees")
	{
		payees.GET("", h.listPayees)
		payees.POST("", middleware.RequireFullAccess(), h.upsertPayee)
	}
}

// listPayees godoc
// @Summary List payees
// @Description Restricted roles see names only; owners also see what is owed and the warning cap.
// @Tags payees
// @Produce json
// @Success 200 {object} dto.ListPayeesResponse
// @Security BearerAuth
// @Router /payees [get]
func (h *payeeHandler) listPayees(c *gin.Context) {
	payees, err := h.payeeService.ListPayees(c.Request.Context(), middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to list payees")
		return
	}
	c.JSON(http.StatusOK, dto.ListPayeesResponse{OK: true, Payees: payees})
}

// upsertPayee godoc
// @Summary Create or top up a payee
// @Description Creates the payee if missing and adds topUp to what the shop owes it.
// @Tags payees
// @Accept json
// @Produce json
// @Param payee body dto.UpsertPayeeRequest true "Payee"
// @Success 200 {object} dto.PayeeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /payees [post]
func (h *payeeHandler) upsertPayee(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.UpsertPayeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	payee, err := h.payeeService.UpsertPayee(c.Request.Context(), req, userID, middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to update payee")
		return
	}
	c.JSON(http.StatusOK, dto.PayeeResponse{OK: true, Payee: *payee})
}
