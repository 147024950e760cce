package targetfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dto "rpc-speed-bot/internal/adapter/storage/targetfile/dto"
	"rpc-speed-bot/internal/domain/entity"
	domainRepo "rpc-speed-bot/internal/domain/repository"
	"rpc-speed-bot/internal/pkg/apperrors"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Compile-time check
var _ domainRepo.TargetRepository = (*Repository)(nil)

// Repository implements TargetRepository on top of a JSON or YAML file.
type Repository struct {
	path   string
	logger *zap.Logger
}

// NewRepository creates a target repository reading from path.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func NewRepository(path string, logger *zap.Logger) *Repository {
	return &Repository{
		path:   path,
		logger: logger.Named("TargetFileStorage"),
	}
}

// Path returns the file the repository reads.
func (r *Repository) Path() string {
	return r.path
}

// LoadTargets reads, validates and maps the targets file.
func (r *Repository) LoadTargets(_ context.Context) ([]entity.Target, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: targets file %s", apperrors.ErrConfigLoad, apperrors.ErrNotFound, r.path)
		}
		return nil, fmt.Errorf("%w: failed to read targets file %s: %v", apperrors.ErrConfigLoad, r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.logger.Debug("Targets file is empty", zap.String("path", r.path))
		return []entity.Target{}, nil
	}

	var rawTargets []dto.TargetRaw
	if r.isYAML() {
		err = yaml.Unmarshal(data, &rawTargets)
	} else {
		err = json.Unmarshal(data, &rawTargets)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse targets file %s: %v", apperrors.ErrConfigLoad, r.path, err)
	}

	targets, err := toDomainTargets(rawTargets)
	if err != nil {
		return nil, fmt.Errorf("%w: targets file %s: %w", apperrors.ErrConfigLoad, r.path, err)
	}

	r.logger.Info("Loaded targets", zap.String("path", r.path), zap.Int("count", len(targets)))
	return targets, nil
}

func (r *Repository) isYAML() bool {
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
