package service

import (
	"context"
	"fmt"

	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/storage"

	"go.uber.org/zap"
)

type BannerService struct {
	banners repository.DocumentStore[models.Banner]
	assets  storage.AssetStore
	audit   repository.AuditStore
	log     *zap.Logger
}

func NewBannerService(
	banners repository.DocumentStore[models.Banner],
	assets storage.AssetStore,
	audit repository.AuditStore,
	log *zap.Logger,
) *BannerService {
	return &BannerService{banners: banners, assets: assets, audit: audit, log: log}
}

func (s *BannerService) List(ctx context.Context) ([]models.Banner, error) {
	return s.banners.FindAll(ctx, newestFirst)
}

func (s *BannerService) Upload(ctx context.Context, bannerID string, image storage.File) (*models.Banner, error) {
	if err := required(bannerID, "banner_id"); err != nil {
		return nil, err
	}
	if len(image.Content) == 0 {
		return nil, errEmptyFile("banner_image")
	}

	banner := &models.Banner{
		ID:       models.NewObjectID(),
		BannerID: bannerID,
	}
	link, err := s.assets.Upload(ctx, image.Content, storage.ObjectName(banner.ID, image.Name))
	if err != nil {
		return nil, err
	}
	banner.BannerLink = link

	if err := s.banners.Insert(ctx, banner); err != nil {
		discardAssets(ctx, s.assets, s.log, link)
		return nil, err
	}

	recordAudit(ctx, s.audit, "banner_created", fmt.Sprintf("Banner %s uploaded", banner.ID))
	return banner, nil
}

// UpdateImage replaces the banner image, removing the previous asset once
// the document links the new one.
func (s *BannerService) UpdateImage(ctx context.Context, id string, image storage.File) (*models.Banner, error) {
	if err := validateID(id, "banner"); err != nil {
		return nil, err
	}
	if len(image.Content) == 0 {
		return nil, errEmptyFile("banner_image")
	}
	banner, err := s.banners.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	newLink, err := replaceAsset(ctx, s.banners, s.assets, s.log, banner.ID, "banner_link", banner.BannerLink, "banner", image)
	if err != nil {
		return nil, err
	}
	banner.BannerLink = newLink
	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "banner"); err != nil {
		return err
	}
	banner, err := s.banners.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := removeAsset(ctx, s.assets, s.log, banner.BannerLink); err != nil {
		return err
	}
	if _, err := s.banners.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "banner_deleted", fmt.Sprintf("Banner %s deleted", id))
	return nil
}
