package console

import (
	"encoding/json"
	"errors"
	"net/http"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	docservice "foundation-backend/internal/domains/document/service"
	"foundation-backend/internal/domains/submission"
	subservice "foundation-backend/internal/domains/submission/service"
	"foundation-backend/internal/shared/middleware"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Handler serves the single-entry console surface used by the admin UI.
// Every action runs through the same policy-checked services as the REST
// routes; this is an alternate transport, not an alternate authority.
type Handler struct {
	documents   docservice.Service
	submissions subservice.Service
}

func NewHandler(documents docservice.Service, submissions subservice.Service) *Handler {
	return &Handler{
		documents:   documents,
		submissions: submissions,
	}
}

// idPayload is shared by actions that address a resource plus a body.
type idPayload struct {
	ID uuid.UUID `json:"id"`
}

// ════════════════════════════════════════════════════════════════
// DISPATCH: POST /v1/console
// ════════════════════════════════════════════════════════════════

func (h *Handler) Dispatch(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req Request
	if err := c.BindJSON(&req); err != nil {
		if errors.Is(err, ErrUnknownAction) {
			response.BadRequest(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	var (
		result interface{}
		err    error
	)

	switch req.Action {
	case ActionSubmissionCreate:
		var payload submission.SubmitRequest
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.submissions.Submit(ctx, p, payload)
		}

	case ActionSubmissionList:
		var payload submission.ListRequest
		if err = unmarshalOptional(req.Payload, &payload); err == nil {
			result, err = h.submissions.List(ctx, p, payload)
		}

	case ActionSubmissionGet:
		var payload idPayload
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.submissions.Get(ctx, p, payload.ID)
		}

	case ActionSubmissionReview:
		var payload struct {
			idPayload
			submission.ReviewRequest
		}
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.submissions.Review(ctx, p, payload.ID, payload.ReviewRequest)
		}

	case ActionDocumentCreate:
		var payload document.CreateRequest
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.documents.Create(ctx, p, payload)
		}

	case ActionDocumentUpdate:
		var payload struct {
			idPayload
			document.UpdateRequest
		}
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.documents.Update(ctx, p, payload.ID, payload.UpdateRequest)
		}

	case ActionDocumentDelete:
		var payload idPayload
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			err = h.documents.Delete(ctx, p, payload.ID)
		}

	case ActionDocumentChangeAuthor:
		var payload struct {
			idPayload
			document.ChangeAuthorRequest
		}
		if err = json.Unmarshal(req.Payload, &payload); err == nil {
			result, err = h.documents.ChangeAuthor(ctx, p, payload.ID, payload.ChangeAuthorRequest)
		}

	default:
		// Unreachable: Action.UnmarshalJSON already rejected anything else.
		response.BadRequest(c, ErrUnknownAction.Error())
		return
	}

	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, string(req.Action), result)
}

// unmarshalOptional treats a missing payload as the zero value.
func unmarshalOptional(raw json.RawMessage, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// ════════════════════════════════════════════════════════════════
// IDENTITY: GET /v1/session
// ════════════════════════════════════════════════════════════════

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	ID            *uuid.UUID `json:"id,omitempty"`
	DisplayName   string     `json:"display_name,omitempty"`
	Email         string     `json:"email,omitempty"`
	Username      *string    `json:"username,omitempty"`
	AdminAccess   bool       `json:"admin_access,omitempty"`
	Position      *string    `json:"position,omitempty"`
	Source        string     `json:"source,omitempty"`
	Merged        bool       `json:"merged,omitempty"`
}

// Session reports the resolved identity, or 401 with authenticated=false.
func (h *Handler) Session(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
		return
	}

	id := p.ID
	c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		ID:            &id,
		DisplayName:   p.DisplayName,
		Email:         p.Email,
		Username:      p.Username,
		AdminAccess:   p.AdminAccess,
		Position:      p.Position,
		Source:        p.Source.String(),
		Merged:        p.IsMerged(),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
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
		errors.Is(err, submission.ErrInvalidStatus),
		errors.Is(err, ErrUnknownAction):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
