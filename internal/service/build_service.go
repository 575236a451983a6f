package service

import (
	"context"
	"fmt"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/sampler"
	"github.com/amterp/swatch/internal/store"
)

// BuildService samples a texture directory into a reference table.
type BuildService struct {
	workers int
}

// NewBuildService creates a build service. workers <= 0 uses GOMAXPROCS.
func NewBuildService(workers int) *BuildService {
	return &BuildService{workers: workers}
}

// Build samples dir and saves the result to out. Nothing is written when no
// texture in dir could be sampled.
func (s *BuildService) Build(ctx context.Context, dir string, out store.ReferenceStore) (*sampler.Result, error) {
	res, err := sampler.SampleDir(ctx, dir, sampler.Options{Workers: s.workers})
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", dir, err)
	}
	if len(res.Entries) == 0 {
		return res, swerr.InvalidField("texture directory", fmt.Sprintf("no usable %dx%d textures in %s", sampler.TextureSize, sampler.TextureSize, dir))
	}

	if err := out.Save(res.Entries); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", out.Path(), err)
	}
	return res, nil
}
