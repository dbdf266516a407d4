package handler

import (
	"errors"
	"net/http"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/document/service"
	"foundation-backend/internal/shared/middleware"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	service service.Service
}

func NewDocumentHandler(svc service.Service) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/documents
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) Create(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req document.CreateRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	d, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Document created", d)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/documents/:id
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", d)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/documents/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) GetBySlug(c *gin.Context) {
	d, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", d)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/documents?page=1&limit=20
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) List(c *gin.Context) {
	var req document.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", result)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/documents/:id
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) Update(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	var req document.UpdateRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	d, err := h.service.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Document updated", d)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/documents/:id/author
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) ChangeAuthor(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	var req document.ChangeAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	d, err := h.service.ChangeAuthor(c.Request.Context(), p, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author changed", d)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/documents/:id
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) Delete(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Document deleted", nil)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func (h *DocumentHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, document.ErrDocumentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, document.ErrSlugTaken):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
