package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type supplierFile struct {
	Suppliers []supplierEntry `yaml:"suppliers"`
}

type supplierEntry struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Email       string   `yaml:"email"`
	Phone       string   `yaml:"phone"`
	URL         string   `yaml:"url"`
	City        string   `yaml:"city"`
	Description string   `yaml:"description"`
	Rating      *float64 `yaml:"rating"`
	Verified    bool     `yaml:"verified"`
	Notes       string   `yaml:"notes"`
}

// LoadSuppliers reads a supplier seed file.
func LoadSuppliers(path string) ([]entities.SupplierCandidate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read supplier seed %s: %w", path, err)
	}
	return ParseSuppliers(raw)
}

// ParseSuppliers decodes a seed document. Entries need a positive id, a name
// and a known category; ids must be unique.
func ParseSuppliers(raw []byte) ([]entities.SupplierCandidate, error) {
	var f supplierFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode supplier seed: %w", err)
	}

	seen := make(map[int64]struct{}, len(f.Suppliers))
	out := make([]entities.SupplierCandidate, 0, len(f.Suppliers))
	for i, e := range f.Suppliers {
		if e.ID <= 0 {
			return nil, fmt.Errorf("supplier seed entry %d: id must be positive", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("supplier seed entry %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("supplier seed entry %d: name is required", i)
		}
		cat, ok := entities.ParseCategory(e.Category)
		if !ok {
			return nil, fmt.Errorf("supplier seed entry %d: unknown category %q", i, e.Category)
		}
		out = append(out, entities.SupplierCandidate{
			RegistryID:  e.ID,
			Name:        strings.TrimSpace(e.Name),
			Category:    cat,
			Email:       strings.TrimSpace(e.Email),
			Phone:       e.Phone,
			URL:         e.URL,
			City:        e.City,
			Description: e.Description,
			Source:      entities.SourceRegistry,
			Rating:      e.Rating,
			Verified:    e.Verified,
			Notes:       e.Notes,
		})
	}
	return out, nil
}

// SeedRegistry upserts every supplier into the registry. Running it twice
// leaves the registry unchanged.
func SeedRegistry(ctx context.Context, registry interfaces.ISupplierRegistry, suppliers []entities.SupplierCandidate, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	saved := 0
	for _, s := range suppliers {
		if _, err := registry.Save(ctx, s); err != nil {
			return saved, fmt.Errorf("seed supplier %d (%s): %w", s.RegistryID, s.Name, err)
		}
		saved++
		logger.Debug("supplier seeded", zap.Int64("id", s.RegistryID), zap.String("name", s.Name))
	}
	logger.Info("supplier registry seeded", zap.Int("count", saved))
	return saved, nil
}
