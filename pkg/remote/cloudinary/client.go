// Package cloudinary implements the remote.Storage boundary on top of the
// Cloudinary admin and upload APIs.
package cloudinary

import (
	"context"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/meltsync/meltsync/pkg/config"
	"github.com/meltsync/meltsync/pkg/remote"
)

// Client implements remote.Storage against a Cloudinary account.
type Client struct {
	cld *cloudinary.Cloudinary
}

var _ remote.Storage = (*Client)(nil)

// 🏭 New creates a client from validated configuration.
func New(cfg *config.Config) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, errors.Errorf("creating cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = cfg.Secure
	return &Client{cld: cld}, nil
}

func assetType(rt remote.ResourceType) api.AssetType {
	switch rt {
	case remote.Image:
		return api.Image
	case remote.Video:
		return api.Video
	default:
		return api.File
	}
}

// 📤 Put uploads a local file under the given public ID.
func (c *Client) Put(ctx context.Context, localPath, publicID string, rt remote.ResourceType, uniqueNames bool) (*remote.Asset, error) {
	res, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID:       publicID,
		ResourceType:   string(rt),
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(uniqueNames),
	})
	if err != nil {
		return nil, errors.Errorf("uploading %s: %w", localPath, err)
	}
	if res.Error.Message != "" {
		return nil, errors.Errorf("uploading %s: %s", localPath, res.Error.Message)
	}

	zerolog.Ctx(ctx).Debug().Str("public_id", res.PublicID).Msg("uploaded asset")
	return &remote.Asset{
		PublicID:  res.PublicID,
		SecureURL: res.SecureURL,
		Format:    res.Format,
		CreatedAt: res.CreatedAt,
		Type:      rt,
	}, nil
}

// 🔍 Exists probes a public ID. The API reports missing assets in the
// response body rather than as a transport error, so both channels are
// checked.
func (c *Client) Exists(ctx context.Context, publicID string, rt remote.ResourceType) error {
	res, err := c.cld.Admin.Asset(ctx, admin.AssetParams{
		PublicID:  publicID,
		AssetType: assetType(rt),
	})
	if err != nil {
		return errors.Errorf("probing %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		if strings.Contains(strings.ToLower(res.Error.Message), "not found") {
			return remote.ErrNotFound
		}
		return errors.Errorf("probing %s: %s", publicID, res.Error.Message)
	}
	return nil
}

// 📂 ListByPrefix lists uploaded assets of one resource type under prefix.
func (c *Client) ListByPrefix(ctx context.Context, prefix string, rt remote.ResourceType, max int) ([]remote.Asset, error) {
	res, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    assetType(rt),
		DeliveryType: "upload",
		Prefix:       prefix,
		MaxResults:   max,
	})
	if err != nil {
		return nil, errors.Errorf("listing %s assets under %s: %w", rt, prefix, err)
	}
	if res.Error.Message != "" {
		return nil, errors.Errorf("listing %s assets under %s: %s", rt, prefix, res.Error.Message)
	}

	assets := make([]remote.Asset, 0, len(res.Assets))
	for _, a := range res.Assets {
		assets = append(assets, remote.Asset{
			PublicID:  a.PublicID,
			SecureURL: a.SecureURL,
			Format:    a.Format,
			CreatedAt: a.CreatedAt,
			Type:      rt,
		})
	}
	return assets, nil
}

// 📂 ListSubfolders lists the folders directly under root. The account
// root is served by a separate endpoint.
func (c *Client) ListSubfolders(ctx context.Context, root string) ([]remote.Folder, error) {
	var res *admin.FoldersResult
	var err error
	if root == "" {
		res, err = c.cld.Admin.RootFolders(ctx, admin.RootFoldersParams{})
	} else {
		res, err = c.cld.Admin.SubFolders(ctx, admin.SubFoldersParams{Folder: root})
	}
	if err != nil {
		return nil, errors.Errorf("listing subfolders of %q: %w", root, err)
	}
	if res.Error.Message != "" {
		return nil, errors.Errorf("listing subfolders of %q: %s", root, res.Error.Message)
	}

	folders := make([]remote.Folder, 0, len(res.Folders))
	for _, f := range res.Folders {
		folders = append(folders, remote.Folder{Name: f.Name, Path: f.Path})
	}
	return folders, nil
}

// 🗑️ DeleteByPrefix deletes every asset of one resource type under prefix.
func (c *Client) DeleteByPrefix(ctx context.Context, prefix string, rt remote.ResourceType) (int, error) {
	res, err := c.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix:    api.CldAPIArray{prefix},
		AssetType: assetType(rt),
	})
	if err != nil {
		return 0, errors.Errorf("deleting %s assets under %s: %w", rt, prefix, err)
	}
	if res.Error.Message != "" {
		return 0, errors.Errorf("deleting %s assets under %s: %s", rt, prefix, res.Error.Message)
	}

	count := 0
	for _, state := range res.Deleted {
		if state == "deleted" {
			count++
		}
	}
	return count, nil
}

// 🗑️ DeleteFolder removes the folder record itself.
func (c *Client) DeleteFolder(ctx context.Context, path string) error {
	res, err := c.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: path})
	if err != nil {
		return errors.Errorf("deleting folder %s: %w", path, err)
	}
	if res.Error.Message != "" {
		return errors.Errorf("deleting folder %s: %s", path, res.Error.Message)
	}
	return nil
}
