// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePickList prints a generated pick list using the configured output format.
func (ow *OutWriter) WritePickList(list *schema.PickList, cfg *contract.Config, duration time.Duration) error {
	return PrintPickListResults(list, cfg, duration)
}

// WriteColumns prints the ranked columns of a configuration using the configured output format.
func (ow *OutWriter) WriteColumns(results []schema.ColumnResult, cfg *contract.Config, duration time.Duration) error {
	return PrintColumnResults(results, cfg, duration)
}

// WriteStatistics prints the aggregate statistics of a pick list.
func (ow *OutWriter) WriteStatistics(list *schema.PickList, cfg *contract.Config) error {
	return PrintStatistics(list, cfg)
}

// WriteWeightValidation prints the advisory result of a weight check.
func (ow *OutWriter) WriteWeightValidation(weights schema.PickListWeights, result schema.WeightValidation, cfg *contract.Config) error {
	return PrintWeightValidation(weights, result, cfg)
}

// WritePresets prints the preset strategies with the active weights.
func (ow *OutWriter) WritePresets(cfg *contract.Config) error {
	return PrintPresets(cfg.ComputedWeights, cfg)
}

// WriteConfiguration prints one saved configuration.
func (ow *OutWriter) WriteConfiguration(saved schema.PickListConfiguration, cfg *contract.Config) error {
	return PrintConfiguration(saved, cfg)
}
