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

// OrderHandler обслуживает жизненный цикл заказа со стороны клиента.
type OrderHandler struct {
	orders   *service.OrderService
	cleaners *service.CleanerService
}

// NewOrderHandler создаёт новый хэндлер.
func NewOrderHandler(orders *service.OrderService, cleaners *service.CleanerService) *OrderHandler {
	return &OrderHandler{orders: orders, cleaners: cleaners}
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	oid, err := common.CurrentUserOID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateOrderRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateMessLevel(req.MessLevel); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidatePrice(req.MaxPrice); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		ClientID:  oid,
		MessLevel: req.MessLevel,
		MaxPrice:  req.MaxPrice,
		Date:      req.Date,
	})
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, order)
}

// GetOrder обрабатывает GET /orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := common.ParseOrderIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	oid, _ := common.CurrentUserOID(c)
	role, _ := common.CurrentUserRole(c)
	if role != models.RoleAdmin && order.ClientID != oid && !order.AssignedTo(oid) {
		common.RespondForbidden(c, "")
		return
	}

	common.RespondJSON(c, http.StatusOK, order)
}

// ListMyOrders обрабатывает GET /orders.
// Возвращает заказы, созданные текущим клиентом.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	oid, err := common.CurrentUserOID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	orders, err := h.orders.ListCreatedOrdersBy(c.Request.Context(), oid)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, orders)
}

// AssignCleaner обрабатывает PUT /orders/:id/assignment-offer.
// Клиент предлагает заказ выбранному клинеру.
func (h *OrderHandler) AssignCleaner(c *gin.Context) {
	orderID, err := common.ParseOrderIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AssignCleanerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	oid, _ := common.CurrentUserOID(c)
	role, _ := common.CurrentUserRole(c)
	if role != models.RoleAdmin && order.ClientID != oid {
		common.RespondForbidden(c, "")
		return
	}

	updated, err := h.orders.AssignCleaner(c.Request.Context(), orderID, req.CleanerID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, updated)
}

// MatchingCleaners обрабатывает GET /orders/:id/matching-cleaners.
// С параметром ?profiles=true подмешивает профили из внешнего каталога.
func (h *OrderHandler) MatchingCleaners(c *gin.Context) {
	orderID, err := common.ParseOrderIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	oid, _ := common.CurrentUserOID(c)
	role, _ := common.CurrentUserRole(c)
	if role != models.RoleAdmin && order.ClientID != oid {
		common.RespondForbidden(c, "")
		return
	}

	matched, err := h.cleaners.ListCleanersMatchingOrder(c.Request.Context(), orderID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	resp := dto.MatchingCleanersResponse{Cleaners: matched}

	if c.Query("profiles") == "true" && len(matched) > 0 {
		profiles, err := h.cleaners.ListCleanersMatchingOrderProfiles(c.Request.Context(), orderID)
		if err != nil {
			common.RespondDomainError(c, err)
			return
		}
		resp.Profiles = profiles
	}

	common.RespondJSON(c, http.StatusOK, resp)
}
