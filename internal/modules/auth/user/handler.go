package user

import (
	"errors"
	"net/http"

	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/pkg/response"
	sessionpkg "github.com/formify/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	a := g.Group("", authMW)
	a.POST("/logout", h.logout)
	a.GET("/me", h.me)
	a.PATCH("/me", h.updateProfile)
	a.PATCH("/password", h.changePassword)
	a.GET("/sessions", h.listSessions)
	a.DELETE("/sessions", h.deleteOtherSessions)
	a.DELETE("/sessions/:id", h.deleteSession)
}

// POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(u))
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(c.Request.Context(), dto.Username, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.ForbiddenMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(sessionpkg.DefaultTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	response.OK(c, loginResponse{Token: token, User: toResponse(u)})
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	if sid := middleware.CurrentSessionID(c); sid != "" {
		_ = sessionpkg.Revoke(h.svc.db, middleware.CurrentUserID(c), sid)
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	response.NoContent(c)
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(u))
}

// PATCH /auth/me
func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(u))
}

// PATCH /auth/password
func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.svc.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), dto.OldPassword, dto.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, errWrongPassword):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errPasswordSameAsOld):
			response.UnprocessableEntity(c, err.Error(), nil)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.NoContent(c)
}

// GET /auth/sessions
func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := sessionpkg.ListActive(h.svc.db.WithContext(c.Request.Context()), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, toSessionResponses(sessions, middleware.CurrentSessionID(c)))
}

// DELETE /auth/sessions/:id
func (h *Handler) deleteSession(c *gin.Context) {
	err := sessionpkg.Revoke(h.svc.db.WithContext(c.Request.Context()), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "session not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /auth/sessions
func (h *Handler) deleteOtherSessions(c *gin.Context) {
	err := sessionpkg.RevokeAllExcept(h.svc.db.WithContext(c.Request.Context()), middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
