package service

import (
	"context"
	"fmt"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
)

type FooterLinkInput struct {
	AppName string `json:"app_name" form:"app_name" binding:"required"`
	AppLink string `json:"app_link" form:"app_link" binding:"required"`
}

type FooterService struct {
	links repository.DocumentStore[models.FooterLink]
	audit repository.AuditStore
}

func NewFooterService(links repository.DocumentStore[models.FooterLink], audit repository.AuditStore) *FooterService {
	return &FooterService{links: links, audit: audit}
}

func (s *FooterService) List(ctx context.Context) ([]models.FooterLink, error) {
	return s.links.FindAll(ctx, "app_name ASC")
}

func (s *FooterService) Get(ctx context.Context, id string) (*models.FooterLink, error) {
	if err := validateID(id, "application"); err != nil {
		return nil, err
	}
	return s.links.FindOne(ctx, id)
}

func (s *FooterService) Create(ctx context.Context, in FooterLinkInput) (*models.FooterLink, error) {
	if err := required(in.AppName, "app_name"); err != nil {
		return nil, err
	}
	if err := required(in.AppLink, "app_link"); err != nil {
		return nil, err
	}

	link := &models.FooterLink{
		ID:      models.NewObjectID(),
		AppName: strings.TrimSpace(in.AppName),
		AppLink: strings.TrimSpace(in.AppLink),
	}
	if err := s.links.Insert(ctx, link); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return nil, apperror.Conflict(fmt.Sprintf("a link for %s already exists", link.AppName)).Wrap(err)
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, "footer_link_created", fmt.Sprintf("Link for %s created", link.AppName))
	return link, nil
}

// UpdateLink changes the link of the application named appName.
func (s *FooterService) UpdateLink(ctx context.Context, appName, appLink string) error {
	if err := required(appName, "app_name"); err != nil {
		return err
	}
	if err := required(appLink, "app_link"); err != nil {
		return err
	}

	modified, err := s.links.UpdateBy(ctx, "app_name", appName, map[string]any{"app_link": strings.TrimSpace(appLink)})
	if err != nil {
		return err
	}
	if modified == 0 {
		return apperror.NotFound(fmt.Sprintf("no link for %s or no changes made", appName))
	}
	return nil
}

func (s *FooterService) Delete(ctx context.Context, id string) error {
	link, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.links.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "footer_link_deleted", fmt.Sprintf("Link for %s deleted", link.AppName))
	return nil
}
