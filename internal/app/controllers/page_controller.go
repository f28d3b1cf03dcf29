package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/services"
	"github.com/yigit/unidb/internal/app/views"
	"github.com/yigit/unidb/internal/middleware"
	"github.com/yigit/unidb/internal/pkg/apperrors"
)

// PageController serves the HTML navigation shell and module pages
type PageController struct {
	entityService *services.EntityService
}

// NewPageController creates a new PageController
func NewPageController(entityService *services.EntityService) *PageController {
	return &PageController{
		entityService: entityService,
	}
}

// Welcome renders the default page
func (c *PageController) Welcome(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.WelcomeTemplate, views.NewWelcomePage(c.entityService.Modules()))
}

// Show renders the module's form and table
func (c *PageController) Show(m models.Module) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		state, err := c.entityService.Snapshot(ctx, middleware.SessionID(ctx), m)
		if err != nil {
			c.renderError(ctx, err)
			return
		}
		ctx.HTML(http.StatusOK, views.ModuleTemplate, views.NewModulePage(c.entityService.Modules(), m, state, "", nil))
	}
}

// Submit applies the posted form to the draft and commits it
func (c *PageController) Submit(m models.Module) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fields := make(map[string]string, len(m.Fields))
		for _, f := range m.Fields {
			if v, ok := ctx.GetPostForm(f.Name); ok {
				fields[f.Name] = v
			}
		}

		state, err := c.entityService.Submit(ctx, middleware.SessionID(ctx), m, fields)
		if err != nil {
			var custom *apperrors.CustomError
			if errors.Is(err, apperrors.ErrValidationFailed) && errors.As(err, &custom) {
				missing, _ := custom.Details["fields"].([]string)
				page := views.NewModulePage(c.entityService.Modules(), m, state, custom.StatusMsg, missing)
				ctx.HTML(http.StatusUnprocessableEntity, views.ModuleTemplate, page)
				return
			}
			c.renderError(ctx, err)
			return
		}

		ctx.Redirect(http.StatusSeeOther, m.Path)
	}
}

// Edit loads a record into the form
func (c *PageController) Edit(m models.Module) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := c.recordID(ctx)
		if !ok {
			return
		}
		if _, err := c.entityService.BeginEdit(ctx, middleware.SessionID(ctx), m, id); err != nil {
			c.renderError(ctx, err)
			return
		}
		ctx.Redirect(http.StatusSeeOther, m.Path)
	}
}

// Delete removes a record
func (c *PageController) Delete(m models.Module) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := c.recordID(ctx)
		if !ok {
			return
		}
		if _, err := c.entityService.Delete(ctx, middleware.SessionID(ctx), m, id); err != nil {
			c.renderError(ctx, err)
			return
		}
		ctx.Redirect(http.StatusSeeOther, m.Path)
	}
}

// NotFound renders the shell for unknown paths; API clients get the JSON envelope
func (c *PageController) NotFound(ctx *gin.Context) {
	if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("Endpoint not found"))
		return
	}
	ctx.HTML(http.StatusNotFound, views.ErrorTemplate, views.NewErrorPage(c.entityService.Modules(), "Page not found."))
}

func (c *PageController) recordID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		c.renderError(ctx, apperrors.NewBadRequestError("Record ID must be a valid number"))
		return 0, false
	}
	return id, true
}

func (c *PageController) renderError(ctx *gin.Context, err error) {
	status, _ := middleware.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		message = "Something went wrong."
	}
	ctx.HTML(status, views.ErrorTemplate, views.NewErrorPage(c.entityService.Modules(), message))
}
