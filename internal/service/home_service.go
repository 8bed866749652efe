package service

import (
	"context"
	"fmt"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
)

type HomeBlockInput struct {
	Name      string `json:"name" form:"name" binding:"required"`
	Content   string `json:"content" form:"content"`
	ImageLink string `json:"image_link" form:"image_link"`
}

type HomeBlockPatch struct {
	Name      *string `json:"name" form:"name"`
	Content   *string `json:"content" form:"content"`
	ImageLink *string `json:"image_link" form:"image_link"`
}

// HomeService manages the named sections of the homepage. Block names are
// case-insensitive and stored lower-case.
type HomeService struct {
	blocks repository.DocumentStore[models.HomeBlock]
	audit  repository.AuditStore
}

func NewHomeService(blocks repository.DocumentStore[models.HomeBlock], audit repository.AuditStore) *HomeService {
	return &HomeService{blocks: blocks, audit: audit}
}

func (s *HomeService) List(ctx context.Context) ([]models.HomeBlock, error) {
	return s.blocks.FindAll(ctx, "name ASC")
}

func (s *HomeService) Get(ctx context.Context, name string) (*models.HomeBlock, error) {
	return s.blocks.FindBy(ctx, "name", strings.ToLower(name))
}

func (s *HomeService) Create(ctx context.Context, in HomeBlockInput) (*models.HomeBlock, error) {
	if err := required(in.Name, "name"); err != nil {
		return nil, err
	}

	block := &models.HomeBlock{
		ID:        models.NewObjectID(),
		Name:      strings.ToLower(strings.TrimSpace(in.Name)),
		Content:   in.Content,
		ImageLink: in.ImageLink,
	}
	if err := s.blocks.Insert(ctx, block); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return nil, apperror.Conflict("block with this name already exists").Wrap(err)
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, "home_block_created", fmt.Sprintf("Block %s created", block.Name))
	return block, nil
}

func (s *HomeService) Update(ctx context.Context, name string, patch HomeBlockPatch) error {
	fields := mergeFields(map[string]*string{
		"name":       patch.Name,
		"content":    patch.Content,
		"image_link": patch.ImageLink,
	})
	if newName, ok := fields["name"].(string); ok {
		fields["name"] = strings.ToLower(newName)
	}
	if len(fields) == 0 {
		return apperror.Validation("no fields provided for update")
	}

	modified, err := s.blocks.UpdateBy(ctx, "name", strings.ToLower(name), fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return apperror.NotFound("block not found or no changes made")
	}
	return nil
}

func (s *HomeService) Delete(ctx context.Context, name string) error {
	block, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if _, err := s.blocks.Delete(ctx, block.ID); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "home_block_deleted", fmt.Sprintf("Block %s deleted", block.Name))
	return nil
}
