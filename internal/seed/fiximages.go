package seed

import (
	"context"
	"os"
	"path/filepath"
)

const legacyImageDir = "static/product_images"

// FixImagePaths repairs rows written by older tooling that stored images
// under the legacy directory with a full relative path. The file is moved
// into the uploads directory and the row rewritten to the bare filename.
// Missing files are tolerated; the row is rewritten either way so the
// application stops probing the legacy location.
func (s *Seeder) FixImagePaths(ctx context.Context) error {
	products, err := s.Products.ListWithImagePrefix(ctx, legacyImageDir+"/")
	if err != nil {
		return err
	}
	if len(products) == 0 {
		s.Log.Info().Msg("no products with legacy image paths")
		return nil
	}
	if err := os.MkdirAll(s.Opts.UploadDir, 0o755); err != nil {
		return err
	}

	moved, updated := 0, 0
	for _, p := range products {
		filename := filepath.Base(p.Image)
		oldPath := filepath.FromSlash(p.Image)
		newPath := filepath.Join(s.Opts.UploadDir, filename)

		if _, err := os.Stat(oldPath); err == nil {
			if err := os.Rename(oldPath, newPath); err != nil {
				s.Log.Error().Str("file", oldPath).Err(err).Msg("move failed, skipping row")
				continue
			}
			moved++
		}
		if err := s.Products.UpdateImage(ctx, p.ProductID, filename); err != nil {
			s.Log.Error().Int64("product", p.ProductID).Err(err).Msg("row update failed")
			continue
		}
		updated++
	}
	s.Log.Info().Int("moved", moved).Int("updated", updated).Msg("image paths fixed")
	return nil
}
