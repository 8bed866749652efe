package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FooterHandler struct {
	footerService *service.FooterService
}

func NewFooterHandler(footerService *service.FooterService) *FooterHandler {
	return &FooterHandler{footerService: footerService}
}

type UpdateLinkRequest struct {
	AppLink string `form:"app_link" json:"app_link" binding:"required"`
}

func (h *FooterHandler) List(c *gin.Context) {
	links, err := h.footerService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, links)
}

func (h *FooterHandler) Get(c *gin.Context) {
	link, err := h.footerService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, link)
}

func (h *FooterHandler) Create(c *gin.Context) {
	var req service.FooterLinkInput
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	link, err := h.footerService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, link)
}

// UpdateLink changes the link of the application named in the path
func (h *FooterHandler) UpdateLink(c *gin.Context) {
	var req UpdateLinkRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	if err := h.footerService.UpdateLink(c.Request.Context(), c.Param("app_name"), req.AppLink); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Link updated successfully")
}

func (h *FooterHandler) Delete(c *gin.Context) {
	if err := h.footerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Link deleted successfully")
}
