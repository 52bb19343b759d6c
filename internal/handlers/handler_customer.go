package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:nameOrPhone", h.getCustomer)
		customers.GET("/:nameOrPhone/history", middleware.RequireFullAccess(), h.getCustomerHistory)
		customers.POST("/adjustments", middleware.RequireFullAccess(), h.adjustDebt)
	}
}

// listCustomers godoc
// @Summary Search customers
// @Description With q, matches name fragments (at most 10). Without q, lists debtors by highest debt.
// @Tags customers
// @Produce json
// @Param q query string false "Name fragment"
// @Param limit query int false "Maximum results"
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	customers, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ListCustomersResponse{OK: true, Customers: customers})
}

// getCustomer godoc
// @Summary Get a customer
// @Description Looks the customer up by name, then by phone.
// @Tags customers
// @Produce json
// @Param nameOrPhone path string true "Customer name or phone"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{nameOrPhone} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("nameOrPhone"))
	if err != nil {
		respondWithError(c, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, dto.CustomerResponse{OK: true, Customer: *customer})
}

// getCustomerHistory godoc
// @Summary Customer balance history
// @Tags customers
// @Produce json
// @Param nameOrPhone path string true "Customer name or phone"
// @Success 200 {object} dto.CustomerHistoryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{nameOrPhone}/history [get]
func (h *customerHandler) getCustomerHistory(c *gin.Context) {
	customer, history, err := h.customerService.GetCustomerHistory(c.Request.Context(), c.Param("nameOrPhone"), middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to get customer history")
		return
	}
	c.JSON(http.StatusOK, dto.CustomerHistoryResponse{OK: true, Customer: customer.Name, History: history})
}

// adjustDebt godoc
// @Summary Adjust a customer's debt
// @Description Adds a signed delta to the customer's debt, creating the customer if needed. The first adjustment is recorded as the opening balance.
// @Tags customers
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustCustomerDebtRequest true "Adjustment"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/adjustments [post]
func (h *customerHandler) adjustDebt(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.AdjustCustomerDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	customer, err := h.customerService.AdjustDebt(c.Request.Context(), req, userID, middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to adjust customer debt")
		return
	}
	c.JSON(http.StatusOK, dto.CustomerResponse{OK: true, Customer: *customer})
}
