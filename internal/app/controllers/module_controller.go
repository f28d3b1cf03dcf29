package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/models/dto"
	"github.com/yigit/unidb/internal/app/services"
	"github.com/yigit/unidb/internal/middleware"
)

// ModuleController exposes the registries over JSON
type ModuleController struct {
	entityService *services.EntityService
}

// NewModuleController creates a new ModuleController
func NewModuleController(entityService *services.EntityService) *ModuleController {
	return &ModuleController{
		entityService: entityService,
	}
}

// ListModules returns the module descriptors
// @Summary List modules
// @Tags modules
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ModuleResponse}
// @Router /modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromModules(c.entityService.Modules()), ""))
}

// GetRegistry returns the session's registry for a module
// @Summary Get module registry
// @Tags modules
// @Produce json
// @Param module path string true "Module name"
// @Success 200 {object} dto.APIResponse{data=dto.RegistryResponse}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /modules/{module} [get]
func (c *ModuleController) GetRegistry(ctx *gin.Context) {
	m, ok := c.module(ctx)
	if !ok {
		return
	}

	state, err := c.entityService.Snapshot(ctx, middleware.SessionID(ctx), m)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromState(m, state), ""))
}

// UpdateField sets one draft value
// @Summary Update a draft field
// @Tags modules
// @Accept json
// @Produce json
// @Param module path string true "Module name"
// @Param request body dto.UpdateFieldRequest true "Field and value"
// @Success 200 {object} dto.APIResponse{data=dto.RegistryResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown field or malformed body"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /modules/{module}/draft [put]
func (c *ModuleController) UpdateField(ctx *gin.Context) {
	m, ok := c.module(ctx)
	if !ok {
		return
	}

	var req dto.UpdateFieldRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	state, err := c.entityService.UpdateField(ctx, middleware.SessionID(ctx), m, req.Field, *req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromState(m, state), "Draft updated"))
}

// Submit commits the draft
// @Summary Submit the draft
// @Description Creates a record, or updates the record being edited
// @Tags modules
// @Accept json
// @Produce json
// @Param module path string true "Module name"
// @Param request body dto.SubmitRequest false "Fields merged into the draft first"
// @Success 200 {object} dto.APIResponse{data=dto.RegistryResponse}
// @Failure 422 {object} dto.ErrorResponse "A required field is empty"
// @Router /modules/{module}/submit [post]
func (c *ModuleController) Submit(ctx *gin.Context) {
	m, ok := c.module(ctx)
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	state, err := c.entityService.Submit(ctx, middleware.SessionID(ctx), m, req.Fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromState(m, state), "Draft submitted"))
}

// BeginEdit loads a record into the draft
// @Summary Edit a record
// @Tags modules
// @Produce json
// @Param module path string true "Module name"
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistryResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /modules/{module}/records/{id}/edit [post]
func (c *ModuleController) BeginEdit(ctx *gin.Context) {
	m, ok := c.module(ctx)
	if !ok {
		return
	}
	id, ok := c.recordID(ctx)
	if !ok {
		return
	}

	state, err := c.entityService.BeginEdit(ctx, middleware.SessionID(ctx), m, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromState(m, state), "Editing record"))
}

// DeleteRecord removes a record; repeating the call is harmless
// @Summary Delete a record
// @Tags modules
// @Param module path string true "Module name"
// @Param id path int true "Record ID"
// @Success 204 "Record deleted"
// @Router /modules/{module}/records/{id} [delete]
func (c *ModuleController) DeleteRecord(ctx *gin.Context) {
	m, ok := c.module(ctx)
	if !ok {
		return
	}
	id, ok := c.recordID(ctx)
	if !ok {
		return
	}

	if _, err := c.entityService.Delete(ctx, middleware.SessionID(ctx), m, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ModuleController) module(ctx *gin.Context) (models.Module, bool) {
	m, err := c.entityService.Module(ctx.Param("module"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return models.Module{}, false
	}
	return m, true
}

func (c *ModuleController) recordID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record ID")
		errorDetail = errorDetail.WithDetails("Record ID must be a valid number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
