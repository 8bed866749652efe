package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
	maxUploadBytes int64
}

func NewGalleryHandler(galleryService *service.GalleryService, maxUploadBytes int64) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, maxUploadBytes: maxUploadBytes}
}

func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, images)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	image, err := h.galleryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, image)
}

// Upload accepts a multipart form with the image in the "file" field
func (h *GalleryHandler) Upload(c *gin.Context) {
	var req service.GalleryInput
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}
	file, err := readFile(c, "file", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	image, err := h.galleryService.Upload(c.Request.Context(), req, file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, image)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	var req service.GalleryPatch
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	if err := h.galleryService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Document updated successfully")
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.galleryService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Image with ID "+id+" successfully deleted")
}
