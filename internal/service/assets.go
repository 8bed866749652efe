package service

import (
	"context"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/storage"

	"go.uber.org/zap"
)

func errEmptyFile(field string) error {
	return apperror.Validation(field + " is required")
}

// discardAssets deletes uploads whose owning document was never written.
// Failures only leave orphaned files behind and are logged.
func discardAssets(ctx context.Context, assets storage.AssetStore, log *zap.Logger, links ...string) {
	for _, link := range links {
		if err := assets.Delete(ctx, link); err != nil {
			log.Warn("failed to delete orphaned asset", zap.String("link", link), zap.Error(err))
		}
	}
}

// removeAsset deletes link from the asset host. A file that is already gone
// counts as removed so the owning document can still be deleted.
func removeAsset(ctx context.Context, assets storage.AssetStore, log *zap.Logger, link string) error {
	if link == "" {
		return nil
	}
	err := assets.Delete(ctx, link)
	if apperror.Is(err, apperror.KindNotFound) {
		log.Info("asset already removed", zap.String("link", link))
		return nil
	}
	return err
}

// replaceAsset uploads file under a fresh name, points field of document id
// at it and then drops oldLink. Every replacement gets its own object name,
// so the upload never overwrites the file the document still links.
func replaceAsset[T any](
	ctx context.Context,
	docs repository.DocumentStore[T],
	assets storage.AssetStore,
	log *zap.Logger,
	id, field, oldLink, what string,
	file storage.File,
) (string, error) {
	newLink, err := assets.Upload(ctx, file.Content, storage.ObjectName(id+"_"+models.NewObjectID(), file.Name))
	if err != nil {
		return "", err
	}
	if newLink == oldLink {
		return newLink, nil
	}

	modified, err := docs.Update(ctx, id, map[string]any{field: newLink})
	if err == nil && modified == 0 {
		err = apperror.NotFound(what + " not found or no changes made")
	}
	if err != nil {
		discardAssets(ctx, assets, log, newLink)
		return "", err
	}

	if oldLink != "" {
		discardAssets(ctx, assets, log, oldLink)
	}
	return newLink, nil
}
