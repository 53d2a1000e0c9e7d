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

// ClientHandler обслуживает учёт клиентов.
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler создаёт новый хэндлер.
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// GetClient обрабатывает GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID := c.Param("id")

	oid, _ := common.CurrentUserOID(c)
	role, _ := common.CurrentUserRole(c)
	if role != models.RoleAdmin && oid != clientID {
		common.RespondForbidden(c, "")
		return
	}

	client, err := h.clients.GetClient(c.Request.Context(), clientID)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, client)
}

// ListClients обрабатывает GET /admin/clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, clients)
}

// AddClient обрабатывает POST /clients.
func (h *ClientHandler) AddClient(c *gin.Context) {
	var req dto.AddClientRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateName(req.Name); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	oid, _ := common.CurrentUserOID(c)
	role, _ := common.CurrentUserRole(c)
	if role != models.RoleAdmin && oid != req.ClientID {
		common.RespondForbidden(c, "")
		return
	}

	client := &models.Client{
		ClientID: req.ClientID,
		Name:     req.Name,
		Email:    req.Email,
	}

	if err := h.clients.AddClient(c.Request.Context(), client); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, client)
}

// DeleteClient обрабатывает DELETE /admin/clients/:id.
// Вместе с клиентом удаляются все созданные им заказы.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID := c.Param("id")

	if err := h.clients.DeleteClient(c.Request.Context(), clientID); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "клиент удалён", nil)
}
