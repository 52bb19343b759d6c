package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

// registerExportRoutes registers the full-state backup route
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvc) {
	rg.GET("/export", middleware.RequireFullAccess(), func(c *gin.Context) {
		exportLedger(c, exportService)
	})
}

// exportLedger godoc
// @Summary Export the ledger
// @Description Customers, payees, movements and balance history read in one consistent snapshot.
// @Tags export
// @Produce json
// @Success 200 {object} dto.ExportResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /export [get]
func exportLedger(c *gin.Context, exportService portssvc.ExportSvc) {
	snap, err := exportService.Export(c.Request.Context(), middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to export ledger")
		return
	}
	movements := make([]domain.MovementView, 0, len(snap.Movements))
	for _, m := range snap.Movements {
		movements = append(movements, accounting.ProjectMovement(m, domain.ProfileFull))
	}
	c.JSON(http.StatusOK, dto.ExportResponse{
		OK:        true,
		TakenAt:   snap.TakenAt,
		Customers: snap.Customers,
		Payees:    snap.Payees,
		Movements: movements,
		History:   snap.History,
	})
}
