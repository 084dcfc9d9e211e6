package form

import (
	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/pkg/pagination"
	"github.com/formify/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the form routes. Reads and submissions are open to
// anonymous callers; the service decides per form.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/forms")
	g.GET("/:id", h.get)
	g.POST("/:id/responses", h.submit)

	a := g.Group("", authMW)
	a.GET("", h.listMine)
	a.POST("", h.create)
	a.POST("/from-template", h.createFromTemplate)
	a.PATCH("/:id", h.update)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
	a.GET("/:id/responses", h.listResponses)
}

// GET /forms?limit=&cursor=
func (h *Handler) listMine(c *gin.Context) {
	q, err := pagination.FromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, next, err := h.svc.ListMine(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, toSummaryResponses(items), next)
}

// GET /forms/:id
func (h *Handler) get(c *gin.Context) {
	f, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(f))
}

// POST /forms
func (h *Handler) create(c *gin.Context) {
	var dto CreateFormDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toResponse(f))
}

// POST /forms/from-template
func (h *Handler) createFromTemplate(c *gin.Context) {
	var dto CreateFromTemplateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, missing, err := h.svc.CreateFromTemplate(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := toResponse(f)
	out.MissingBlocks = missing
	response.Created(c, out)
}

// PATCH|PUT /forms/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateFormDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(f))
}

// DELETE /forms/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// POST /forms/:id/responses
func (h *Handler) submit(c *gin.Context) {
	var dto SubmitResponseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.SubmitResponse(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto.Data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toSubmission(r))
}

// GET /forms/:id/responses?limit=&cursor=
func (h *Handler) listResponses(c *gin.Context) {
	q, err := pagination.FromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, next, err := h.svc.ListResponses(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, toSubmissions(rows), next)
}
