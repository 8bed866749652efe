package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	bannerService  *service.BannerService
	maxUploadBytes int64
}

func NewBannerHandler(bannerService *service.BannerService, maxUploadBytes int64) *BannerHandler {
	return &BannerHandler{bannerService: bannerService, maxUploadBytes: maxUploadBytes}
}

func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.bannerService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, banners)
}

// Upload accepts a multipart form with "banner_id" and "banner_image"
func (h *BannerHandler) Upload(c *gin.Context) {
	image, err := readFile(c, "banner_image", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	banner, err := h.bannerService.Upload(c.Request.Context(), c.PostForm("banner_id"), image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, banner)
}

func (h *BannerHandler) UpdateImage(c *gin.Context) {
	image, err := readFile(c, "banner_image", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	banner, err := h.bannerService.UpdateImage(c.Request.Context(), c.Param("id"), image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, banner)
}

func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.bannerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Banner deleted successfully")
}
