package service

import (
	"context"
	"fmt"

	"delit-api/internal/models"
	"delit-api/internal/repository"
)

type BlogInput struct {
	Author   string `json:"author" form:"author" binding:"required"`
	BlogName string `json:"blog_name" form:"blog_name" binding:"required"`
	Link     string `json:"link" form:"link"`
	Content  string `json:"content" form:"content"`
	Overview string `json:"overview" form:"overview"`
}

type BlogPatch struct {
	Author   *string `json:"author" form:"author"`
	BlogName *string `json:"blog_name" form:"blog_name"`
	Link     *string `json:"link" form:"link"`
	Content  *string `json:"content" form:"content"`
	Overview *string `json:"overview" form:"overview"`
}

type BlogService struct {
	blogs repository.DocumentStore[models.Blog]
	audit repository.AuditStore
}

func NewBlogService(blogs repository.DocumentStore[models.Blog], audit repository.AuditStore) *BlogService {
	return &BlogService{blogs: blogs, audit: audit}
}

// List returns every blog post, newest first
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.FindAll(ctx, newestFirst)
}

func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if err := validateID(id, "blog"); err != nil {
		return nil, err
	}
	return s.blogs.FindOne(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, in BlogInput) (*models.Blog, error) {
	if err := required(in.Author, "author"); err != nil {
		return nil, err
	}
	if err := required(in.BlogName, "blog_name"); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		ID:       models.NewObjectID(),
		Author:   in.Author,
		BlogName: in.BlogName,
		Link:     in.Link,
		Content:  in.Content,
		Overview: in.Overview,
	}
	if err := s.blogs.Insert(ctx, blog); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, "blog_created", fmt.Sprintf("Blog %s created", blog.ID))
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, id string, patch BlogPatch) error {
	if err := validateID(id, "blog"); err != nil {
		return err
	}
	return applyUpdate(ctx, s.blogs, id, "blog", mergeFields(map[string]*string{
		"author":    patch.Author,
		"blog_name": patch.BlogName,
		"link":      patch.Link,
		"content":   patch.Content,
		"overview":  patch.Overview,
	}))
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "blog"); err != nil {
		return err
	}
	if _, err := s.blogs.FindOne(ctx, id); err != nil {
		return err
	}
	if _, err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "blog_deleted", fmt.Sprintf("Blog %s deleted", id))
	return nil
}
