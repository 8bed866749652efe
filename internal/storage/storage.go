// Package storage uploads binary assets (images, PDFs) to an external host
// and returns the public URL stored alongside the owning document.
package storage

import (
	"context"
	"path"
	"strings"
)

//go:generate mockgen -source=storage.go -destination=mocks/asset_store.go -package=mocks

// AssetStore is the external file host.
type AssetStore interface {
	Upload(ctx context.Context, content []byte, filename string) (string, error)
	Delete(ctx context.Context, url string) error
}

// File is an uploaded multipart file held in memory.
type File struct {
	Name    string
	Content []byte
}

// ObjectName builds the stored file name for an asset owned by docID. The
// client supplied name is reduced to its base name so it cannot escape the
// upload folder.
func ObjectName(docID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return docID + "_" + name
}
