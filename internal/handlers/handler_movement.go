package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

// movementHandler handles HTTP requests for ledger movements.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

// registerMovementRoutes registers routes related to movements
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.submitMovement)
		owner := movements.Group("", middleware.RequireFullAccess())
		owner.GET("", h.listMovements)
		owner.GET("/:movementID", h.getMovement)
		owner.POST("/:movementID/void", h.voidMovement)
	}
}

// submitMovement godoc
// @Summary Record a movement
// @Description Records a SALE, EXPENSE, WITHDRAWAL_PARTIAL or CLOSURE_FULL and applies its effect on customer and payee balances.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid movement"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Payee not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) submitMovement(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	movement, err := h.movementService.SubmitMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record movement")
		return
	}

	// The caller just recorded it, so echo it back in full.
	c.JSON(http.StatusCreated, dto.MovementResponse{
		OK:       true,
		Movement: accounting.ProjectMovement(*movement, domain.ProfileFull),
	})
}

// voidMovement godoc
// @Summary Void a movement
// @Description Soft-deletes a movement and reverses its balance effect. Voiding twice is a no-op reported with alreadyVoided.
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.VoidMovementResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID}/void [post]
func (h *movementHandler) voidMovement(c *gin.Context) {
	userID, ok := sessionUser(c)
	if !ok {
		return
	}
	movementID := c.Param("movementID")
	role := middleware.GetRoleFromContext(c)

	movement, alreadyVoided, err := h.movementService.VoidMovement(c.Request.Context(), movementID, userID, role)
	if err != nil {
		respondWithError(c, err, "Failed to void movement")
		return
	}
	if alreadyVoided {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Void ignored, movement already voided", slog.String("movement_id", movementID))
	}

	c.JSON(http.StatusOK, dto.VoidMovementResponse{
		OK:            true,
		AlreadyVoided: alreadyVoided,
		Movement:      accounting.ProjectMovement(*movement, role.Profile()),
	})
}

// getMovement godoc
// @Summary Get a movement
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	role := middleware.GetRoleFromContext(c)
	movement, err := h.movementService.GetMovement(c.Request.Context(), c.Param("movementID"), role)
	if err != nil {
		respondWithError(c, err, "Failed to get movement")
		return
	}
	c.JSON(http.StatusOK, dto.MovementResponse{OK: true, Movement: accounting.ProjectMovement(*movement, role.Profile())})
}

// listMovements godoc
// @Summary List movements
// @Description Movement history, newest first, with token based pagination.
// @Tags movements
// @Produce json
// @Param limit query int false "Page size (max 300)" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	role := middleware.GetRoleFromContext(c)

	movements, next, err := h.movementService.ListMovements(c.Request.Context(), params, role)
	if err != nil {
		respondWithError(c, err, "Failed to list movements")
		return
	}

	views := make([]domain.MovementView, 0, len(movements))
	for _, m := range movements {
		views = append(views, accounting.ProjectMovement(m, role.Profile()))
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{OK: true, Movements: views, NextToken: next})
}
