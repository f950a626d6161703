package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"boutique/internal/database"
	"boutique/internal/logger"
	"boutique/internal/repository"
	"boutique/internal/seed"
)

func main() {
	var (
		dbPath    = flag.String("db", "boutique.db", "path to the sqlite database")
		source    = flag.String("source", "all", "catalog source: all, fakestore, dummyjson or platzi")
		max       = flag.Int("max", 5, "max products per category per source")
		delay     = flag.Duration("delay", 500*time.Millisecond, "pause between inserts")
		download  = flag.Bool("download-images", false, "download product images locally")
		uploads   = flag.String("uploads", "static/uploads", "image upload directory")
		fixImages = flag.Bool("fix-images", false, "move legacy image paths and exit")
	)
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"), os.Stdout)

	db, err := database.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("open database")
	}
	defer db.Close()

	if err := database.NewMigrator(db, log).Run(); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	s := seed.New(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewUserRepo(db),
		seed.Options{
			MaxPerCategory: *max,
			Delay:          *delay,
			DownloadImages: *download,
			UploadDir:      *uploads,
		},
		log,
	)

	ctx := context.Background()

	if *fixImages {
		if err := s.FixImagePaths(ctx); err != nil {
			log.Fatal().Err(err).Msg("fix image paths")
		}
		return
	}

	sources, err := resolveSources(*source)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve sources")
	}
	if err := s.Run(ctx, sources); err != nil {
		log.Fatal().Err(err).Msg("seed catalog")
	}
}

func resolveSources(name string) ([]seed.Source, error) {
	if strings.EqualFold(name, "all") {
		return seed.Sources, nil
	}
	src, ok := seed.SourceByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return []seed.Source{src}, nil
}
