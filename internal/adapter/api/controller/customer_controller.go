package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	customerdomain "github.com/gestaofacil/backend/internal/domain/customer"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	audit        *service.AuditService
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, audit *service.AuditService, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		audit:        audit,
		logger:       logger,
	}
}

// List lista os clientes do dono autenticado
// @Summary Listar clientes
// @Description Lista os clientes em ordem alfabética
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} customer.Customer
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	customers, err := c.customerRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, customers)
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente para o dono autenticado
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} customer.Customer
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	cust, err := customerdomain.NewCustomer(ownerID, req.Name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}
	req.Apply(cust)

	if err := c.customerRepo.Create(ctx, cust); err != nil {
		c.logger.Error("falha ao criar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar cliente", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CUSTOMER", cust.ID, "CREATE", "Cliente "+cust.Name, ctx.Request)
	ctx.JSON(http.StatusCreated, cust)
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados de um cliente existente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} customer.Customer
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	cust, err := c.customerRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	req.Apply(cust)
	if err := c.customerRepo.Update(ctx, cust); err != nil {
		c.logger.Error("falha ao atualizar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar cliente", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CUSTOMER", cust.ID, "UPDATE", "Cliente "+cust.Name, ctx.Request)
	ctx.JSON(http.StatusOK, cust)
}

// Delete remove um cliente
// @Summary Remover cliente
// @Description Remove um cliente do dono autenticado
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.customerRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("falha ao remover cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover cliente", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CUSTOMER", id, "DELETE", "Cliente removido", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Cliente removido", nil))
}
