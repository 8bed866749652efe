package service

import (
	"context"
	"fmt"

	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/storage"

	"go.uber.org/zap"
)

type GalleryInput struct {
	EventName   string `form:"event_name" binding:"required"`
	ImageID     string `form:"image_id"`
	Date        string `form:"date"`
	Description string `form:"description"`
}

type GalleryPatch struct {
	EventName   *string `json:"event_name" form:"event_name"`
	ImageID     *string `json:"image_id" form:"image_id"`
	Date        *string `json:"date" form:"date"`
	Description *string `json:"description" form:"description"`
}

// GalleryService stores event photos on the asset host and their metadata
// in the gallery collection.
type GalleryService struct {
	images repository.DocumentStore[models.GalleryImage]
	assets storage.AssetStore
	audit  repository.AuditStore
	log    *zap.Logger
}

func NewGalleryService(
	images repository.DocumentStore[models.GalleryImage],
	assets storage.AssetStore,
	audit repository.AuditStore,
	log *zap.Logger,
) *GalleryService {
	return &GalleryService{images: images, assets: assets, audit: audit, log: log}
}

func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	return s.images.FindAll(ctx, newestFirst)
}

func (s *GalleryService) Get(ctx context.Context, id string) (*models.GalleryImage, error) {
	if err := validateID(id, "image"); err != nil {
		return nil, err
	}
	return s.images.FindOne(ctx, id)
}

// Upload stores the image file first and inserts the document only when
// the asset host returned a link.
func (s *GalleryService) Upload(ctx context.Context, in GalleryInput, file storage.File) (*models.GalleryImage, error) {
	if err := required(in.EventName, "event_name"); err != nil {
		return nil, err
	}
	if len(file.Content) == 0 {
		return nil, errEmptyFile("file")
	}

	image := &models.GalleryImage{
		ID:          models.NewObjectID(),
		EventName:   in.EventName,
		ImageID:     in.ImageID,
		Date:        in.Date,
		Description: in.Description,
	}

	link, err := s.assets.Upload(ctx, file.Content, storage.ObjectName(image.ID, file.Name))
	if err != nil {
		return nil, err
	}
	image.Link = link

	if err := s.images.Insert(ctx, image); err != nil {
		discardAssets(ctx, s.assets, s.log, link)
		return nil, err
	}

	recordAudit(ctx, s.audit, "gallery_image_created", fmt.Sprintf("Image %s uploaded", image.ID))
	return image, nil
}

func (s *GalleryService) Update(ctx context.Context, id string, patch GalleryPatch) error {
	if err := validateID(id, "image"); err != nil {
		return err
	}
	return applyUpdate(ctx, s.images, id, "image", mergeFields(map[string]*string{
		"event_name":  patch.EventName,
		"image_id":    patch.ImageID,
		"date":        patch.Date,
		"description": patch.Description,
	}))
}

// Delete removes the asset and then the document. The document is kept when
// the asset host refuses the deletion.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	image, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := removeAsset(ctx, s.assets, s.log, image.Link); err != nil {
		return err
	}
	if _, err := s.images.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "gallery_image_deleted", fmt.Sprintf("Image %s deleted", id))
	return nil
}
