package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository/memory"
	"delit-api/internal/storage"
	"delit-api/internal/storage/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func ptr(s string) *string { return &s }

func TestMergeFields(t *testing.T) {
	merged := mergeFields(map[string]*string{
		"author":    ptr("Ann"),
		"blog_name": ptr("   "),
		"link":      ptr("string"),
		"content":   nil,
		"overview":  ptr(" short "),
	})
	require.Equal(t, map[string]any{"author": "Ann", "overview": "short"}, merged)
}

func TestBlogCRUD(t *testing.T) {
	ctx := context.Background()
	blogs := memory.NewCollection[models.Blog]("blog")
	svc := NewBlogService(blogs, &memory.AuditStore{})

	blog, err := svc.Create(ctx, BlogInput{Author: "Ann", BlogName: "First"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "not-an-id")
	require.True(t, apperror.Is(err, apperror.KindValidation))

	err = svc.Update(ctx, blog.ID, BlogPatch{Link: ptr("string"), Content: ptr("")})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, svc.Update(ctx, blog.ID, BlogPatch{Overview: ptr("intro")}))
	got, err := svc.Get(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, "intro", got.Overview)
	require.Equal(t, "Ann", got.Author)

	err = svc.Update(ctx, blog.ID, BlogPatch{Overview: ptr("intro")})
	require.True(t, apperror.Is(err, apperror.KindNotFound), "unchanged update should report no changes")

	err = svc.Update(ctx, models.NewObjectID(), BlogPatch{Overview: ptr("x")})
	require.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, svc.Delete(ctx, blog.ID))
	err = svc.Delete(ctx, blog.ID)
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestBlogListEmpty(t *testing.T) {
	svc := NewBlogService(memory.NewCollection[models.Blog]("blog"), &memory.AuditStore{})

	blogs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, blogs)
}

func TestHomeBlockNamesAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewHomeService(memory.NewCollection[models.HomeBlock]("block", "name"), &memory.AuditStore{})

	block, err := svc.Create(ctx, HomeBlockInput{Name: "About", Content: "hello"})
	require.NoError(t, err)
	require.Equal(t, "about", block.Name)

	_, err = svc.Create(ctx, HomeBlockInput{Name: "ABOUT"})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	got, err := svc.Get(ctx, "AbOuT")
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)

	require.NoError(t, svc.Update(ctx, "About", HomeBlockPatch{Content: ptr("updated")}))
	require.NoError(t, svc.Delete(ctx, "ABOUT"))

	_, err = svc.Get(ctx, "about")
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFooterLinks(t *testing.T) {
	ctx := context.Background()
	svc := NewFooterService(memory.NewCollection[models.FooterLink]("link", "app_name"), &memory.AuditStore{})

	link, err := svc.Create(ctx, FooterLinkInput{AppName: "instagram", AppLink: "https://instagram.com/delit"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, FooterLinkInput{AppName: "instagram", AppLink: "https://instagram.com/other"})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	require.NoError(t, svc.UpdateLink(ctx, "instagram", "https://instagram.com/new"))
	got, err := svc.Get(ctx, link.ID)
	require.NoError(t, err)
	require.Equal(t, "https://instagram.com/new", got.AppLink)

	err = svc.UpdateLink(ctx, "myspace", "https://myspace.com")
	require.True(t, apperror.Is(err, apperror.KindNotFound))

	err = svc.UpdateLink(ctx, "instagram", "string")
	require.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	subscribers := memory.NewCollection[models.Subscriber]("subscriber", "mail_id")
	svc := NewSubscriptionService(subscribers, &memory.AuditStore{})

	_, created, err := svc.Subscribe(ctx, "Reader@Example.com")
	require.NoError(t, err)
	require.True(t, created)

	existing, created, err := svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "reader@example.com", existing.MailID)
	require.Equal(t, 1, subscribers.Len())

	_, _, err = svc.Subscribe(ctx, "not a mail")
	require.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, svc.Unsubscribe(ctx, "reader@example.com"))
	err = svc.Unsubscribe(ctx, "reader@example.com")
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func newPublicationService(t *testing.T, maxBytes int64) (*PublicationService, *memory.Collection[models.Publication], *mocks.MockAssetStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetStore(ctrl)
	publications := memory.NewCollection[models.Publication]("publication")
	svc := NewPublicationService(publications, assets, &memory.AuditStore{}, zap.NewNop(), maxBytes)
	return svc, publications, assets
}

func TestPublicationCreate(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	ctx := context.Background()

	gomock.InOrder(
		assets.EXPECT().Upload(gomock.Any(), []byte("%PDF"), gomock.Any()).Return("https://host/issue.pdf", nil),
		assets.EXPECT().Upload(gomock.Any(), []byte("PNG"), gomock.Any()).Return("https://host/cover.png", nil),
	)

	pub, err := svc.Create(ctx,
		PublicationInput{PublicationName: "Issue 1", PublicationType: "magazine"},
		storage.File{Name: "issue.pdf", Content: []byte("%PDF")},
		storage.File{Name: "cover.png", Content: []byte("PNG")},
	)
	require.NoError(t, err)
	require.Equal(t, "https://host/issue.pdf", pub.PublicationLink)
	require.Equal(t, "https://host/cover.png", pub.CoverImageLink)
	require.Equal(t, 1, publications.Len())
}

func TestPublicationCreateCoverUploadFails(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	ctx := context.Background()

	gomock.InOrder(
		assets.EXPECT().Upload(gomock.Any(), []byte("%PDF"), gomock.Any()).Return("https://host/issue.pdf", nil),
		assets.EXPECT().Upload(gomock.Any(), []byte("PNG"), gomock.Any()).
			Return("", apperror.Upstream("error uploading file to github", errors.New("422"))),
		assets.EXPECT().Delete(gomock.Any(), "https://host/issue.pdf").Return(nil),
	)

	_, err := svc.Create(ctx,
		PublicationInput{PublicationName: "Issue 1"},
		storage.File{Name: "issue.pdf", Content: []byte("%PDF")},
		storage.File{Name: "cover.png", Content: []byte("PNG")},
	)
	require.True(t, apperror.Is(err, apperror.KindUpstream), "got %v", err)
	require.Equal(t, 0, publications.Len())
}

func TestPublicationCreateInsertFails(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	publications.InsertErr = errors.New("connection reset")

	assets.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://host/a", nil)
	assets.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://host/b", nil)
	assets.EXPECT().Delete(gomock.Any(), "https://host/a").Return(nil)
	assets.EXPECT().Delete(gomock.Any(), "https://host/b").Return(errors.New("gone"))

	_, err := svc.Create(context.Background(),
		PublicationInput{PublicationName: "Issue 1"},
		storage.File{Name: "a.pdf", Content: []byte("a")},
		storage.File{Name: "b.png", Content: []byte("b")},
	)
	require.Error(t, err)
	require.Equal(t, 0, publications.Len())
}

func TestPublicationTooLarge(t *testing.T) {
	svc, publications, _ := newPublicationService(t, 4)

	_, err := svc.Create(context.Background(),
		PublicationInput{PublicationName: "Issue 1"},
		storage.File{Name: "issue.pdf", Content: []byte("0123456789")},
		storage.File{Name: "cover.png", Content: []byte("PNG")},
	)
	require.True(t, apperror.Is(err, apperror.KindTooLarge), "got %v", err)
	require.Equal(t, 0, publications.Len())
}

func TestPublicationUpdateCover(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	ctx := context.Background()

	existing := &models.Publication{
		ID:              models.NewObjectID(),
		PublicationName: "Issue 1",
		PublicationLink: "https://host/issue.pdf",
		CoverImageLink:  "https://host/old.png",
	}
	require.NoError(t, publications.Insert(ctx, existing))

	gomock.InOrder(
		assets.EXPECT().Upload(gomock.Any(), []byte("NEW"), gomock.Cond(func(name any) bool {
			return strings.HasPrefix(name.(string), existing.ID+"_") && strings.HasSuffix(name.(string), "_new.png")
		})).Return("https://host/new.png", nil),
		assets.EXPECT().Delete(gomock.Any(), "https://host/old.png").Return(nil),
	)

	updated, err := svc.UpdateCover(ctx, existing.ID, storage.File{Name: "new.png", Content: []byte("NEW")})
	require.NoError(t, err)
	require.Equal(t, "https://host/new.png", updated.CoverImageLink)

	stored, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	require.Equal(t, "https://host/new.png", stored.CoverImageLink)
}

func TestPublicationDeleteRefusedKeepsDocument(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	ctx := context.Background()

	existing := &models.Publication{
		ID:              models.NewObjectID(),
		PublicationLink: "https://host/issue.pdf",
		CoverImageLink:  "https://host/cover.png",
	}
	require.NoError(t, publications.Insert(ctx, existing))

	assets.EXPECT().Delete(gomock.Any(), "https://host/issue.pdf").Return(apperror.Conflict("unable to delete the file"))

	err := svc.Delete(ctx, existing.ID)
	require.True(t, apperror.Is(err, apperror.KindConflict))
	require.Equal(t, 1, publications.Len())
}

func TestGalleryUploadAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetStore(ctrl)
	images := memory.NewCollection[models.GalleryImage]("image")
	audit := &memory.AuditStore{}
	svc := NewGalleryService(images, assets, audit, zap.NewNop())
	ctx := context.Background()

	assets.EXPECT().Upload(gomock.Any(), []byte("JPG"), gomock.Any()).Return("https://host/photo.jpg", nil)
	image, err := svc.Upload(ctx, GalleryInput{EventName: "Fest", Date: "2024-02-01"}, storage.File{Name: "photo.jpg", Content: []byte("JPG")})
	require.NoError(t, err)
	require.Equal(t, "https://host/photo.jpg", image.Link)

	_, err = svc.Upload(ctx, GalleryInput{EventName: "Fest"}, storage.File{Name: "empty.jpg"})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	assets.EXPECT().Delete(gomock.Any(), "https://host/photo.jpg").Return(nil)
	require.NoError(t, svc.Delete(ctx, image.ID))
	require.Equal(t, 0, images.Len())
	require.Equal(t, []string{"gallery_image_created", "gallery_image_deleted"}, audit.Actions())
}

func TestBannerUploadInsertFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetStore(ctrl)
	banners := memory.NewCollection[models.Banner]("banner")
	banners.InsertErr = errors.New("db down")
	svc := NewBannerService(banners, assets, &memory.AuditStore{}, zap.NewNop())

	gomock.InOrder(
		assets.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://host/banner.png", nil),
		assets.EXPECT().Delete(gomock.Any(), "https://host/banner.png").Return(nil),
	)

	_, err := svc.Upload(context.Background(), "top", storage.File{Name: "banner.png", Content: []byte("PNG")})
	require.Error(t, err)
	require.Equal(t, 0, banners.Len())
}

// bucket is an asset host keyed by object name. Uploads to an existing name
// overwrite it, like S3 does.
type bucket struct {
	objects map[string][]byte
}

func newBucket() *bucket { return &bucket{objects: map[string][]byte{}} }

func (b *bucket) Upload(ctx context.Context, content []byte, filename string) (string, error) {
	b.objects[filename] = content
	return "https://host/" + filename, nil
}

func (b *bucket) Delete(ctx context.Context, link string) error {
	name := strings.TrimPrefix(link, "https://host/")
	if _, ok := b.objects[name]; !ok {
		return apperror.NotFound("file not found")
	}
	delete(b.objects, name)
	return nil
}

func (b *bucket) has(link string) bool {
	_, ok := b.objects[strings.TrimPrefix(link, "https://host/")]
	return ok
}

func TestBannerReplaceWithSameFileName(t *testing.T) {
	ctx := context.Background()
	host := newBucket()
	banners := memory.NewCollection[models.Banner]("banner")
	svc := NewBannerService(banners, host, &memory.AuditStore{}, zap.NewNop())

	banner, err := svc.Upload(ctx, "top", storage.File{Name: "banner.png", Content: []byte("v1")})
	require.NoError(t, err)

	for _, content := range []string{"v2", "v3"} {
		previous := banner.BannerLink
		banner, err = svc.UpdateImage(ctx, banner.ID, storage.File{Name: "banner.png", Content: []byte(content)})
		require.NoError(t, err)
		require.NotEqual(t, previous, banner.BannerLink)
		require.False(t, host.has(previous))
	}

	stored, err := banners.FindOne(ctx, banner.ID)
	require.NoError(t, err)
	require.Equal(t, banner.BannerLink, stored.BannerLink)
	require.True(t, host.has(stored.BannerLink))
	require.Len(t, host.objects, 1)
}

func TestPublicationReplaceCoverWithSameFileName(t *testing.T) {
	ctx := context.Background()
	host := newBucket()
	publications := memory.NewCollection[models.Publication]("publication")
	svc := NewPublicationService(publications, host, &memory.AuditStore{}, zap.NewNop(), 1024)

	publication, err := svc.Create(ctx, PublicationInput{PublicationName: "Issue 1"},
		storage.File{Name: "issue.pdf", Content: []byte("%PDF")},
		storage.File{Name: "cover.png", Content: []byte("v1")})
	require.NoError(t, err)

	updated, err := svc.UpdateCover(ctx, publication.ID, storage.File{Name: "cover.png", Content: []byte("v2")})
	require.NoError(t, err)
	require.NotEqual(t, publication.CoverImageLink, updated.CoverImageLink)

	stored, err := svc.Get(ctx, publication.ID)
	require.NoError(t, err)
	require.True(t, host.has(stored.CoverImageLink))
	require.Equal(t, []byte("v2"), host.objects[strings.TrimPrefix(stored.CoverImageLink, "https://host/")])
	require.Len(t, host.objects, 2)
}

func TestGalleryDeleteWhenAssetAlreadyGone(t *testing.T) {
	ctx := context.Background()
	host := newBucket()
	images := memory.NewCollection[models.GalleryImage]("image")
	svc := NewGalleryService(images, host, &memory.AuditStore{}, zap.NewNop())

	image, err := svc.Upload(ctx, GalleryInput{EventName: "Fest"}, storage.File{Name: "photo.jpg", Content: []byte("JPG")})
	require.NoError(t, err)
	require.NoError(t, host.Delete(ctx, image.Link))

	require.NoError(t, svc.Delete(ctx, image.ID))
	require.Equal(t, 0, images.Len())
}

func TestPublicationDeleteRetryAfterPartialFailure(t *testing.T) {
	svc, publications, assets := newPublicationService(t, 1024)
	ctx := context.Background()

	existing := &models.Publication{
		ID:              models.NewObjectID(),
		PublicationLink: "https://host/issue.pdf",
		CoverImageLink:  "https://host/cover.png",
	}
	require.NoError(t, publications.Insert(ctx, existing))

	gomock.InOrder(
		assets.EXPECT().Delete(gomock.Any(), "https://host/issue.pdf").Return(nil),
		assets.EXPECT().Delete(gomock.Any(), "https://host/cover.png").Return(apperror.Conflict("unable to delete the file")),
		assets.EXPECT().Delete(gomock.Any(), "https://host/issue.pdf").Return(apperror.NotFound("file not found")),
		assets.EXPECT().Delete(gomock.Any(), "https://host/cover.png").Return(nil),
	)

	err := svc.Delete(ctx, existing.ID)
	require.True(t, apperror.Is(err, apperror.KindConflict))
	require.Equal(t, 1, publications.Len())

	require.NoError(t, svc.Delete(ctx, existing.ID))
	require.Equal(t, 0, publications.Len())
}
