package template

import (
	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/templates")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:id", h.get)
}

// GET /templates?category=
func (h *Handler) list(c *gin.Context) {
	response.OK(c, List(c.Query("category")))
}

// GET /templates/categories
func (h *Handler) categories(c *gin.Context) {
	response.OK(c, Categories)
}

// GET /templates/:id
func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Detail(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, d)
}
