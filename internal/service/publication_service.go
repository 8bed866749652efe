package service

import (
	"context"
	"fmt"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/storage"

	"go.uber.org/zap"
)

type PublicationInput struct {
	PublicationName string `form:"publication_name" binding:"required"`
	PublicationType string `form:"publication_type"`
	Description     string `form:"description"`
}

type PublicationPatch struct {
	PublicationName *string `json:"publication_name" form:"publication_name"`
	PublicationType *string `json:"publication_type" form:"publication_type"`
	Description     *string `json:"description" form:"description"`
}

// PublicationService manages publications: a document file and a cover
// image on the asset host plus their metadata.
type PublicationService struct {
	publications repository.DocumentStore[models.Publication]
	assets       storage.AssetStore
	audit        repository.AuditStore
	log          *zap.Logger
	maxFileBytes int64
}

func NewPublicationService(
	publications repository.DocumentStore[models.Publication],
	assets storage.AssetStore,
	audit repository.AuditStore,
	log *zap.Logger,
	maxFileBytes int64,
) *PublicationService {
	return &PublicationService{
		publications: publications,
		assets:       assets,
		audit:        audit,
		log:          log,
		maxFileBytes: maxFileBytes,
	}
}

func (s *PublicationService) List(ctx context.Context) ([]models.Publication, error) {
	return s.publications.FindAll(ctx, newestFirst)
}

func (s *PublicationService) Get(ctx context.Context, id string) (*models.Publication, error) {
	if err := validateID(id, "publication"); err != nil {
		return nil, err
	}
	return s.publications.FindOne(ctx, id)
}

// Create uploads the publication file and the cover image, then inserts the
// document. Nothing is inserted unless both uploads succeed; uploads that
// did succeed are deleted again.
func (s *PublicationService) Create(ctx context.Context, in PublicationInput, file, cover storage.File) (*models.Publication, error) {
	if err := required(in.PublicationName, "publication_name"); err != nil {
		return nil, err
	}
	if len(file.Content) == 0 {
		return nil, errEmptyFile("publication_file")
	}
	if len(cover.Content) == 0 {
		return nil, errEmptyFile("cover_image")
	}
	if err := s.checkSize(file); err != nil {
		return nil, err
	}
	if err := s.checkSize(cover); err != nil {
		return nil, err
	}

	publication := &models.Publication{
		ID:              models.NewObjectID(),
		PublicationName: in.PublicationName,
		PublicationType: in.PublicationType,
		Description:     in.Description,
	}

	fileLink, err := s.assets.Upload(ctx, file.Content, storage.ObjectName(publication.ID, file.Name))
	if err != nil {
		return nil, err
	}

	coverLink, err := s.assets.Upload(ctx, cover.Content, storage.ObjectName(publication.ID, cover.Name))
	if err != nil {
		discardAssets(ctx, s.assets, s.log, fileLink)
		return nil, err
	}

	publication.PublicationLink = fileLink
	publication.CoverImageLink = coverLink
	if err := s.publications.Insert(ctx, publication); err != nil {
		discardAssets(ctx, s.assets, s.log, fileLink, coverLink)
		return nil, err
	}

	recordAudit(ctx, s.audit, "publication_created", fmt.Sprintf("Publication %s uploaded", publication.ID))
	return publication, nil
}

func (s *PublicationService) UpdateDetails(ctx context.Context, id string, patch PublicationPatch) error {
	if err := validateID(id, "publication"); err != nil {
		return err
	}
	return applyUpdate(ctx, s.publications, id, "publication", mergeFields(map[string]*string{
		"publication_name": patch.PublicationName,
		"publication_type": patch.PublicationType,
		"description":      patch.Description,
	}))
}

// UpdateCover replaces the cover image. The new image is uploaded and
// linked before the old one is removed, so a failure never leaves the
// document without a cover.
func (s *PublicationService) UpdateCover(ctx context.Context, id string, cover storage.File) (*models.Publication, error) {
	if len(cover.Content) == 0 {
		return nil, errEmptyFile("cover_image")
	}
	if err := s.checkSize(cover); err != nil {
		return nil, err
	}
	publication, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newLink, err := replaceAsset(ctx, s.publications, s.assets, s.log, publication.ID, "cover_image_link", publication.CoverImageLink, "publication", cover)
	if err != nil {
		return nil, err
	}
	publication.CoverImageLink = newLink
	return publication, nil
}

// Delete removes both assets and then the document. The document is kept
// when the asset host refuses a deletion; assets already gone are skipped,
// so a retry after a partial failure succeeds.
func (s *PublicationService) Delete(ctx context.Context, id string) error {
	publication, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, link := range []string{publication.PublicationLink, publication.CoverImageLink} {
		if err := removeAsset(ctx, s.assets, s.log, link); err != nil {
			return err
		}
	}
	if _, err := s.publications.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "publication_deleted", fmt.Sprintf("Publication %s deleted", id))
	return nil
}

func (s *PublicationService) checkSize(file storage.File) error {
	if s.maxFileBytes > 0 && int64(len(file.Content)) > s.maxFileBytes {
		return apperror.TooLarge(fmt.Sprintf("file size exceeds the limit %d MB", s.maxFileBytes/(1024*1024)))
	}
	return nil
}
