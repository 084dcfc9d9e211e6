package block

import (
	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/blocks")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.GET("/mine", h.listMine)
	a.POST("", h.create)
	a.PATCH("/:id", h.update)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// GET /blocks?category=&include_custom=
func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	includeCustom := true
	if q.IncludeCustom != nil {
		includeCustom = *q.IncludeCustom
	}
	blocks, err := h.svc.List(c.Request.Context(), Filter{
		Category:      q.Category,
		IncludeCustom: includeCustom,
		ViewerID:      middleware.CurrentUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponses(blocks))
}

// GET /blocks/categories
func (h *Handler) categories(c *gin.Context) {
	response.OK(c, Categories)
}

// GET /blocks/mine
func (h *Handler) listMine(c *gin.Context) {
	blocks, err := h.svc.ListMine(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponses(blocks))
}

// GET /blocks/:id
func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(b))
}

// POST /blocks
func (h *Handler) create(c *gin.Context) {
	var dto CreateBlockDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toResponse(b))
}

// PATCH|PUT /blocks/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateBlockDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(b))
}

// DELETE /blocks/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
