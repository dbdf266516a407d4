package handler

import (
	"errors"
	"net/http"
	"time"

	"foundation-backend/internal/config"
	"foundation-backend/internal/domains/employee"
	"foundation-backend/internal/shared/middleware"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	service employee.Service
	cookies config.CookieConfig
}

func NewEmployeeHandler(svc employee.Service, cookies config.CookieConfig) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		cookies: cookies,
	}
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/staff/login
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Login(c *gin.Context) {
	var req employee.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	meta := employee.SessionMeta{
		UserAgent:     c.Request.UserAgent(),
		OriginAddress: middleware.GetClientIP(c),
	}

	result, err := h.service.Login(c.Request.Context(), req, meta)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/staff/logout
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Logout(c *gin.Context) {
	if token := middleware.RawToken(c); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			h.handleError(c, err)
			return
		}
	}

	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// ════════════════════════════════════════════════════════════════
// PROFILE: GET /v1/staff/me
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Me(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok || p.EmployeeID == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), *p.EmployeeID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", dto)
}

// ════════════════════════════════════════════════════════════════
// PROFILE: PUT /v1/staff/me
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) UpdateMe(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok || p.EmployeeID == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req employee.UpdateSelfRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateSelf(c.Request.Context(), *p.EmployeeID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", dto)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: POST /v1/staff
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Register(c *gin.Context) {
	var req employee.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Employee created", dto)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: GET /v1/staff
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) List(c *gin.Context) {
	var req employee.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", result)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: PUT /v1/staff/:id
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	var req employee.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee updated", dto)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: DELETE /v1/staff/:id
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee deleted", nil)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func (h *EmployeeHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.StaffName, token, maxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *EmployeeHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.StaffName, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *EmployeeHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, employee.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, employee.ErrTooManyAttempts):
		response.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, employee.ErrSessionWriteFailed):
		response.InternalServerError(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
