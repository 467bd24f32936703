package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// builtinCards are the help topics a fresh server starts with.
var builtinCards = []Card{
	{
		ID:          "1",
		Title:       "Account Management",
		Description: "Learn how to manage your account settings, update your profile, and manage your subscription.",
	},
	{
		ID:          "2",
		Title:       "Billing and Payments",
		Description: "Get help with billing issues, payment methods, and understanding your invoices.",
	},
	{
		ID:          "3",
		Title:       "Privacy and Security",
		Description: "Understand our privacy policies, how we protect your data, and steps to secure your account.",
	},
	{
		ID:          "4",
		Title:       "Using the Product",
		Description: "Explore how to use our product effectively, including tips and tutorials.",
	},
	{
		ID:          "5",
		Title:       "Troubleshooting",
		Description: "Find solutions to common problems and learn how to fix issues quickly.",
	},
}

// loadSeed returns the initial cards for the configured source. Seeds are
// only ever read: the store never writes back.
func loadSeed(ctx context.Context, cfg SeedConfig, logger *slog.Logger) ([]Card, error) {
	switch cfg.Source {
	case seedSourceBuiltin:
		out := make([]Card, len(builtinCards))
		copy(out, builtinCards)
		return out, nil
	case seedSourceNone:
		return []Card{}, nil
	case seedSourceFile:
		return loadFileCatalogue(cfg.File)
	case seedSourceS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := EnsureBucketExists(ctx, client, cfg.S3); err != nil {
			return nil, err
		}
		return loadS3Catalogue(ctx, client, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unknown seed source %q", cfg.Source)
	}
}

func loadFileCatalogue(path string) ([]Card, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	var cat catalogue
	if err := yaml.NewDecoder(f).Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file %q: %w", path, err)
	}
	if cat.Cards == nil {
		cat.Cards = []Card{}
	}
	return cat.Cards, nil
}
