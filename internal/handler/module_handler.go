package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/response"
	"github.com/klasurapp/backend/internal/service"
	"github.com/klasurapp/backend/internal/validator"
)

type ModuleHandler struct {
	moduleService *service.ModuleService
}

func NewModuleHandler(moduleService *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

// GetAll godoc
// GET /api/v1/modules
func (h *ModuleHandler) GetAll(c *gin.Context) {
	modules, err := h.moduleService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if modules == nil {
		modules = []model.Module{}
	}

	response.Success(c, http.StatusOK, gin.H{"modules": modules})
}

// GetByID godoc
// GET /api/v1/modules/:id
func (h *ModuleHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	module, err := h.moduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"module": module})
}

// GetByCode godoc
// GET /api/v1/modules/code/:code
func (h *ModuleHandler) GetByCode(c *gin.Context) {
	module, err := h.moduleService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"module": module})
}

// Create godoc
// POST /api/v1/modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var req model.CreateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	module := &model.Module{Name: req.Name, Code: req.Code, Description: req.Description}
	if err := h.moduleService.Create(c.Request.Context(), module); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"module": module})
}

// Update godoc
// PUT /api/v1/modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	module := &model.Module{ID: id, Name: req.Name, Code: req.Code, Description: req.Description}
	if err := h.moduleService.Update(c.Request.Context(), module); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"module": module})
}

// Delete godoc
// DELETE /api/v1/modules/:id
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.moduleService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
