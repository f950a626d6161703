package seed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"boutique/internal/model"
	"boutique/internal/repository"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Options controls a seeding run.
type Options struct {
	MaxPerCategory int           // cap on imported items per local category
	Delay          time.Duration // polite pause between inserts
	DownloadImages bool          // fetch images locally instead of storing the remote URL
	UploadDir      string        // where downloaded images land
	Stock          int64         // stock assigned to every imported product
}

// Seeder imports remote catalog items into the products table. Fetching is
// strictly sequential with no retries: a failed source or image is logged
// and skipped.
type Seeder struct {
	Client     *http.Client
	Products   *repository.ProductRepo
	Categories *repository.CategoryRepo
	Users      *repository.UserRepo
	Opts       Options
	Log        zerolog.Logger
}

func New(products *repository.ProductRepo, categories *repository.CategoryRepo, users *repository.UserRepo, opts Options, log zerolog.Logger) *Seeder {
	if opts.MaxPerCategory <= 0 {
		opts.MaxPerCategory = 5
	}
	if opts.Delay <= 0 {
		opts.Delay = 500 * time.Millisecond
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "static/uploads"
	}
	if opts.Stock <= 0 {
		opts.Stock = 10
	}
	return &Seeder{
		Client:     &http.Client{Timeout: 15 * time.Second},
		Products:   products,
		Categories: categories,
		Users:      users,
		Opts:       opts,
		Log:        log,
	}
}

// Run imports the given sources. It resolves the category map and the
// default maker once, then walks each source's category mapping.
func (s *Seeder) Run(ctx context.Context, sources []Source) error {
	catIDs, err := s.Categories.NameToID(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	maker, err := s.Users.EnsureDefaultAdmin(ctx)
	if err != nil {
		return fmt.Errorf("ensure default maker: %w", err)
	}

	total := 0
	for _, src := range sources {
		items, err := s.fetchItems(ctx, src)
		if err != nil {
			s.Log.Error().Str("source", src.Name).Err(err).Msg("fetch failed, skipping source")
			continue
		}
		s.Log.Info().Str("source", src.Name).Int("items", len(items)).Msg("catalog fetched")

		for localName, keyword := range src.Categories {
			catID, ok := catIDs[localName]
			if !ok {
				s.Log.Warn().Str("category", localName).Msg("unknown local category, skipping")
				continue
			}
			added := 0
			for _, it := range items {
				if added >= s.Opts.MaxPerCategory {
					break
				}
				if it.Category != keyword {
					continue
				}
				if err := s.insert(ctx, it, catID, maker); err != nil {
					s.Log.Error().Str("product", it.Title).Err(err).Msg("insert failed, skipping")
					continue
				}
				added++
				total++
				time.Sleep(s.Opts.Delay)
			}
			if added > 0 {
				s.Log.Info().Str("source", src.Name).Str("category", localName).Int("added", added).Msg("category seeded")
			}
		}
	}
	s.Log.Info().Int("total", total).Msg("seeding finished")
	return nil
}

func (s *Seeder) insert(ctx context.Context, it item, categoryID, maker int64) error {
	image := it.ImageURL
	if s.Opts.DownloadImages && it.ImageURL != "" {
		if filename, err := s.downloadImage(ctx, it.ImageURL, it.Title); err == nil {
			image = filename
		} else {
			s.Log.Warn().Str("url", it.ImageURL).Err(err).Msg("image download failed, keeping remote URL")
		}
	}
	_, err := s.Products.Create(ctx, model.Product{
		Name:        it.Title,
		Price:       it.Price,
		Description: it.Description,
		Image:       image,
		Stock:       s.Opts.Stock,
		CategoryID:  categoryID,
		Maker:       maker,
	})
	return err
}

// fetchItems retrieves and normalizes one source's catalog.
func (s *Seeder) fetchItems(ctx context.Context, src Source) ([]item, error) {
	body, err := s.get(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	switch src.Name {
	case "fakestore":
		var products []fakestoreProduct
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("decode fakestore: %w", err)
		}
		items := make([]item, 0, len(products))
		for _, p := range products {
			items = append(items, item{Title: p.Title, Price: p.Price, Description: p.Description, Category: p.Category, ImageURL: p.Image})
		}
		return items, nil
	case "dummyjson":
		var resp dummyJSONResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode dummyjson: %w", err)
		}
		items := make([]item, 0, len(resp.Products))
		for _, p := range resp.Products {
			img := p.Thumbnail
			if img == "" && len(p.Images) > 0 {
				img = p.Images[0]
			}
			items = append(items, item{Title: p.Title, Price: p.Price, Description: p.Description, Category: p.Category, ImageURL: img})
		}
		return items, nil
	case "platzi":
		var products []platziProduct
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("decode platzi: %w", err)
		}
		items := make([]item, 0, len(products))
		for _, p := range products {
			var img string
			if len(p.Images) > 0 {
				img = p.Images[0]
			}
			items = append(items, item{Title: p.Title, Price: p.Price, Description: p.Description, Category: p.Category.Name, ImageURL: img})
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown source %q", src.Name)
}

func (s *Seeder) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// downloadImage stores the remote image in the uploads directory and
// returns the bare filename for the database row.
func (s *Seeder) downloadImage(ctx context.Context, url, productName string) (string, error) {
	if err := os.MkdirAll(s.Opts.UploadDir, 0o755); err != nil {
		return "", err
	}
	filename := cleanName(productName) + "_" + randomHex(4) + ".jpg"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	f, err := os.Create(filepath.Join(s.Opts.UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return filename, nil
}

// cleanName reduces a product title to a filesystem-friendly stem: letters,
// digits, dash and underscore, spaces collapsed to underscores, at most 30
// characters.
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if len(out) > 30 {
		out = out[:30]
	}
	return out
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
