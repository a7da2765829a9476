package catalog

import (
	"context"
	"fmt"
	"os"
	"wellcheck/internal/model"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store is the persisted catalog source, implemented by repository.CatalogRepo
type Store interface {
	GetByName(ctx context.Context, name string) (*model.Catalog, error)
}

// LoadFile reads a YAML catalog from path and validates it
func LoadFile(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document and validates it
func Parse(data []byte) (model.Catalog, error) {
	var c model.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return model.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Resolve picks the catalog for this process: an explicit file wins, then a
// catalog stored under name, then the built-in default. store may be nil.
func Resolve(ctx context.Context, logger *zap.Logger, path string, store Store, name string) (model.Catalog, error) {
	if path != "" {
		c, err := LoadFile(path)
		if err != nil {
			return model.Catalog{}, err
		}
		logger.Info("catalog loaded from file", zap.String("path", path), zap.String("name", c.Name))
		return c, nil
	}

	if store != nil && name != "" {
		stored, err := store.GetByName(ctx, name)
		if err != nil {
			return model.Catalog{}, fmt.Errorf("load stored catalog: %w", err)
		}
		if stored != nil {
			if err := stored.Validate(); err != nil {
				return model.Catalog{}, fmt.Errorf("stored catalog %q: %w", name, err)
			}
			logger.Info("catalog loaded from store", zap.String("name", name))
			return *stored, nil
		}
		logger.Warn("catalog not found in store, using built-in", zap.String("name", name))
	}

	return Default(), nil
}
