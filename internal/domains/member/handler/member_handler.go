package handler

import (
	"errors"
	"net/http"
	"time"

	"foundation-backend/internal/config"
	"foundation-backend/internal/domains/member"
	"foundation-backend/internal/shared/middleware"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type MemberHandler struct {
	service member.Service
	cookies config.CookieConfig
}

func NewMemberHandler(svc member.Service, cookies config.CookieConfig) *MemberHandler {
	return &MemberHandler{
		service: svc,
		cookies: cookies,
	}
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/members/register
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) Register(c *gin.Context) {
	var req member.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", dto)
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/members/login
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) Login(c *gin.Context) {
	var req member.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/members/logout
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) Logout(c *gin.Context) {
	// Member tokens are not registry-backed; clearing the cookie is the
	// whole logout.
	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// ════════════════════════════════════════════════════════════════
// PROFILE: GET /v1/members/me
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) Me(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok || p.MemberID == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), *p.MemberID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", dto)
}

// ════════════════════════════════════════════════════════════════
// PROFILE: PUT /v1/members/me
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) UpdateMe(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok || p.MemberID == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req member.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), *p.MemberID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", dto)
}

// ════════════════════════════════════════════════════════════════
// PROFILE: DELETE /v1/members/me
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) DeleteMe(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok || p.MemberID == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), *p.MemberID); err != nil {
		h.handleError(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "Account deleted", nil)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func (h *MemberHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.MemberName, token, maxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *MemberHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.MemberName, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *MemberHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, member.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, member.ErrTooManyAttempts):
		response.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", err.Error())
	case errors.Is(err, member.ErrMemberNotFound), errors.Is(err, member.ErrMemberDeleted):
		response.NotFound(c, member.ErrMemberNotFound.Error())
	case errors.Is(err, member.ErrUsernameAlreadyTaken):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
