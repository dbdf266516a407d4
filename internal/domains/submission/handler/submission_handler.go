package handler

import (
	"errors"
	"net/http"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/submission"
	"foundation-backend/internal/domains/submission/service"
	"foundation-backend/internal/shared/middleware"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	service service.Service
}

func NewSubmissionHandler(svc service.Service) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/submissions
// ════════════════════════════════════════════════════════════════

func (h *SubmissionHandler) Submit(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req submission.SubmitRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), p, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Submission created", sub)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/submissions/:id
// ════════════════════════════════════════════════════════════════

func (h *SubmissionHandler) GetByID(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}

	sub, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", sub)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/submissions?status=pending|approved|rejected|all
// ════════════════════════════════════════════════════════════════

func (h *SubmissionHandler) List(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req submission.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subs, err := h.service.List(c.Request.Context(), p, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", subs)
}

// ════════════════════════════════════════════════════════════════
// REVIEW: POST /v1/submissions/:id/review
// ════════════════════════════════════════════════════════════════

func (h *SubmissionHandler) Review(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}

	var req submission.ReviewRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Review(c.Request.Context(), p, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Review recorded", result)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func (h *SubmissionHandler) handleError(c *gin.Context, err error) {
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
	case errors.Is(err, submission.ErrSubmissionNotFound),
		errors.Is(err, document.ErrDocumentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, submission.ErrAlreadyReviewed),
		errors.Is(err, submission.ErrTargetDocumentMissing),
		errors.Is(err, document.ErrSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, submission.ErrInvalidDecision),
		errors.Is(err, submission.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
