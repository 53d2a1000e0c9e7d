package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partyklinest/cleaning-backend/internal/dto"
	"github.com/partyklinest/cleaning-backend/internal/http/handlers/common"
	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/service"
	"github.com/partyklinest/cleaning-backend/internal/validation"
)

// CleanerHandler обслуживает профиль клинера и его действия над заказами.
type CleanerHandler struct {
	cleaners *service.CleanerService
}

// NewCleanerHandler создаёт новый хэндлер.
func NewCleanerHandler(cleaners *service.CleanerService) *CleanerHandler {
	return &CleanerHandler{cleaners: cleaners}
}

// canActOn проверяет, что запрашивающий — сам клинер либо администратор.
func canActOn(c *gin.Context, cleanerID string) bool {
	oid, err := common.CurrentUserOID(c)
	if err != nil {
		return false
	}
	role, _ := common.CurrentUserRole(c)
	return oid == cleanerID || role == models.RoleAdmin
}

// GetCleaner обрабатывает GET /cleaners/:id.
func (h *CleanerHandler) GetCleaner(c *gin.Context) {
	cleanerID := c.Param("id")
	if !canActOn(c, cleanerID) {
		common.RespondForbidden(c, "")
		return
	}

	cleaner, err := h.cleaners.GetCleanerInfo(c.Request.Context(), cleanerID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewCleanerResponse(cleaner))
}

// GetAssignedOrders обрабатывает GET /cleaners/:id/orders.
func (h *CleanerHandler) GetAssignedOrders(c *gin.Context) {
	cleanerID := c.Param("id")
	if !canActOn(c, cleanerID) {
		common.RespondForbidden(c, "")
		return
	}

	orders, err := h.cleaners.GetAssignedOrders(c.Request.Context(), cleanerID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, orders)
}

// UpdateCleaner обрабатывает PUT /cleaners/:id.
func (h *CleanerHandler) UpdateCleaner(c *gin.Context) {
	cleanerID := c.Param("id")
	if !canActOn(c, cleanerID) {
		common.RespondForbidden(c, "")
		return
	}

	var req dto.UpdateCleanerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	patch := service.CleanerPatch{CleanerID: cleanerID}

	if req.Status != nil {
		if _, ok := models.ValidCleanerStatuses[*req.Status]; !ok {
			common.RespondBadRequest(c, "некорректный статус клинера")
			return
		}
		patch.Status = req.Status
	}

	if req.OrderFilter != nil {
		filter := req.OrderFilter.ToOrderFilter()
		if err := validation.ValidateOrderFilter(filter); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
		patch.OrderFilter = &filter
	}

	if req.ScheduleEntries != nil {
		entries := dto.ToScheduleEntries(*req.ScheduleEntries)
		if err := validation.ValidateSchedule(entries); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
		patch.ScheduleEntries = &entries
	}

	if err := h.cleaners.UpdateCleaner(c.Request.Context(), patch); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "профиль клинера обновлён", nil)
}

// SetCleanerStatus обрабатывает PUT /admin/cleaners/:id/status.
func (h *CleanerHandler) SetCleanerStatus(c *gin.Context) {
	cleanerID := c.Param("id")

	var req dto.SetCleanerStatusRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if _, ok := models.ValidCleanerStatuses[req.Status]; !ok {
		common.RespondBadRequest(c, "некорректный статус клинера")
		return
	}

	if err := h.cleaners.SetCleanerStatus(c.Request.Context(), cleanerID, req.Status); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "статус клинера обновлён", nil)
}

// AcceptRejectOrder обрабатывает PUT /orders/:id/assignment.
// Клинер присылает снимок заказа: принятие либо отказ от назначения.
func (h *CleanerHandler) AcceptRejectOrder(c *gin.Context) {
	oid, err := common.CurrentUserOID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	orderID, err := common.ParseOrderIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.OrderSnapshotRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if _, ok := models.ValidOrderStatuses[req.Status]; !ok {
		common.RespondBadRequest(c, "некорректный статус заказа")
		return
	}

	sent := &models.Order{
		OrderID:   orderID,
		Status:    req.Status,
		CleanerID: req.CleanerID,
	}

	if err := h.cleaners.AcceptRejectOrder(c.Request.Context(), oid, sent); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "решение по заказу принято", nil)
}

// ConfirmOrderCompleted обрабатывает POST /orders/:id/opinion.
// Клинер закрывает заказ и оставляет мнение о клиенте.
func (h *CleanerHandler) ConfirmOrderCompleted(c *gin.Context) {
	oid, err := common.CurrentUserOID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	orderID, err := common.ParseOrderIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.OpinionRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	opinion := models.Opinion{Rating: req.Rating, Comment: req.Comment}
	if err := validation.ValidateOpinion(opinion); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.cleaners.ConfirmOrderCompleted(c.Request.Context(), oid, orderID, opinion); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "заказ закрыт", nil)
}
