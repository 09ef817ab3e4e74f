package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/response"
	"github.com/klasurapp/backend/internal/service"
	"github.com/klasurapp/backend/internal/validator"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetAll godoc
// GET /api/v1/accounts
func (h *AccountHandler) GetAll(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	payloads := make([]model.AccountPayload, 0, len(accounts))
	for _, a := range accounts {
		payloads = append(payloads, model.NewAccountPayload(a))
	}
	response.Success(c, http.StatusOK, gin.H{"accounts": payloads})
}

// GetByID godoc
// GET /api/v1/accounts/:id
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": model.NewAccountPayload(account)})
}

// GetByUsername godoc
// GET /api/v1/accounts/username/:username
func (h *AccountHandler) GetByUsername(c *gin.Context) {
	account, err := h.accountService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": model.NewAccountPayload(account)})
}

// Create godoc
// POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req model.CreateAccountRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"account": model.NewAccountPayload(account)})
}

// Update godoc
// PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdateAccountRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": model.NewAccountPayload(account)})
}

// RecordLogin godoc
// POST /api/v1/accounts/:id/login
func (h *AccountHandler) RecordLogin(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.accountService.RecordLogin(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "login recorded"})
}

// Delete godoc
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.accountService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
