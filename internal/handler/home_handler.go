package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	homeService *service.HomeService
}

func NewHomeHandler(homeService *service.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

func (h *HomeHandler) List(c *gin.Context) {
	blocks, err := h.homeService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, blocks)
}

func (h *HomeHandler) Get(c *gin.Context) {
	block, err := h.homeService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, block)
}

func (h *HomeHandler) Create(c *gin.Context) {
	var req service.HomeBlockInput
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	block, err := h.homeService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, block)
}

func (h *HomeHandler) Update(c *gin.Context) {
	var req service.HomeBlockPatch
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	if err := h.homeService.Update(c.Request.Context(), c.Param("name"), req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Block updated successfully")
}

func (h *HomeHandler) Delete(c *gin.Context) {
	if err := h.homeService.Delete(c.Request.Context(), c.Param("name")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Block deleted successfully")
}
