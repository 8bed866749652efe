package storage

import (
	"context"
	"fmt"

	"delit-api/internal/config"
)

// New returns the asset store selected by cfg.Backend.
func New(ctx context.Context, cfg config.AssetsConfig) (AssetStore, error) {
	switch cfg.Backend {
	case "", "github":
		if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
			return nil, fmt.Errorf("github asset store requires GITHUB_REPO_OWNER and GITHUB_REPO_NAME")
		}
		return NewGitHubStore(NewGitHubClient(cfg.GitHub.Token), cfg.GitHub), nil
	case "s3":
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3), nil
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}
