package usecase

import (
	"context"

	"github.com/runoshun/task-cli/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective domain.Config // Merged configuration with the store path resolved
	Loaded    []string      // Config files that contributed, lowest precedence first
	Warnings  []string      // Problems found while loading
}

// ShowConfig reports the effective configuration.
type ShowConfig struct {
	config    *domain.Config
	storePath string
}

// NewShowConfig creates a new ShowConfig use case.
// storePath is the location the store actually uses after overrides.
func NewShowConfig(config *domain.Config, storePath string) *ShowConfig {
	return &ShowConfig{
		config:    config,
		storePath: storePath,
	}
}

// Execute returns a copy of the configuration.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	effective := *uc.config
	effective.Store.Path = uc.storePath
	effective.Loaded = nil
	effective.Warnings = nil

	return &ShowConfigOutput{
		Effective: effective,
		Loaded:    append([]string(nil), uc.config.Loaded...),
		Warnings:  append([]string(nil), uc.config.Warnings...),
	}, nil
}
