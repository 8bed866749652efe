package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PublicationHandler struct {
	publicationService *service.PublicationService
	maxUploadBytes     int64
}

func NewPublicationHandler(publicationService *service.PublicationService, maxUploadBytes int64) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService, maxUploadBytes: maxUploadBytes}
}

func (h *PublicationHandler) List(c *gin.Context) {
	publications, err := h.publicationService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, publications)
}

func (h *PublicationHandler) Get(c *gin.Context) {
	publication, err := h.publicationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, publication)
}

// Create accepts a multipart form with "publication_file" and "cover_image"
func (h *PublicationHandler) Create(c *gin.Context) {
	var req service.PublicationInput
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}
	file, err := readFile(c, "publication_file", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	cover, err := readFile(c, "cover_image", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	publication, err := h.publicationService.Create(c.Request.Context(), req, file, cover)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, publication)
}

func (h *PublicationHandler) UpdateDetails(c *gin.Context) {
	var req service.PublicationPatch
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	if err := h.publicationService.UpdateDetails(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Publication updated successfully")
}

func (h *PublicationHandler) UpdateCover(c *gin.Context) {
	cover, err := readFile(c, "cover_image", h.maxUploadBytes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	publication, err := h.publicationService.UpdateCover(c.Request.Context(), c.Param("id"), cover)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, publication)
}

func (h *PublicationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.publicationService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Publication with id "+id+" is successfully deleted")
}
