package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mcpstarter/internal/domain"
)

//go:embed items.yaml
var defaultItems []byte

type itemsFile struct {
	Items []domain.Item `json:"items" yaml:"items" toml:"items"`
}

// Loader reads item catalogs from YAML, TOML or JSON files.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("catalog")}
}

// Default returns the built-in catalog.
func (l *Loader) Default() []domain.Item {
	items, err := l.decode("items.yaml", defaultItems)
	if err != nil {
		panic(fmt.Sprintf("embedded item catalog is invalid: %v", err))
	}
	return items
}

// Load reads path, or returns the built-in catalog when path is empty.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return l.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}
	return l.decode(path, data)
}

func (l *Loader) decode(path string, data []byte) ([]domain.Item, error) {
	var file itemsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		expanded, missing, err := expandItemsEnv(data)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			l.logger.Warn("items file references unset environment variables",
				zap.String("path", path),
				zap.Strings("missing", missing),
			)
		}
		if err := yaml.Unmarshal(expanded, &file); err != nil {
			return nil, fmt.Errorf("decode yaml items: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode toml items: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode json items: %w", err)
		}
	default:
		return nil, domain.E(domain.CodeInvalidArgument, "catalog.Load", fmt.Sprintf("unsupported items format %q", ext), nil)
	}

	if err := validateItems(file.Items); err != nil {
		return nil, err
	}
	return file.Items, nil
}

func validateItems(items []domain.Item) error {
	var errs []string
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			errs = append(errs, fmt.Sprintf("items[%d]: id is required", i))
			continue
		}
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Sprintf("items[%d]: name is required", i))
		}
		if _, dup := seen[item.ID]; dup {
			errs = append(errs, fmt.Sprintf("items[%d]: duplicate id %q", i, item.ID))
		}
		seen[item.ID] = struct{}{}
	}
	if len(errs) > 0 {
		return domain.E(domain.CodeInvalidArgument, "catalog.Validate", strings.Join(errs, "; "), errors.New("invalid item catalog"))
	}
	return nil
}
