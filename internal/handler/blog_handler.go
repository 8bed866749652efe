package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List returns every blog post, newest first
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, blogs)
}

func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, blog)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req service.BlogInput
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, blog)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req service.BlogPatch
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	if err := h.blogService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Blog updated successfully")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Blog deleted successfully")
}
