package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// validationReport is the rendered result of a weight check.
type validationReport struct {
	Weights schema.PickListWeights `json:"weights"`
	Sum     float64                `json:"sum"`
	schema.WeightValidation
}

// PrintWeightValidation outputs the advisory result of validating a weight vector.
func PrintWeightValidation(weights schema.PickListWeights, result schema.WeightValidation, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteWeightValidation(w, weights, result, cfg.Output)
	}, "Wrote validation")
}

// WriteWeightValidation writes a weight check in the given format.
func WriteWeightValidation(w io.Writer, weights schema.PickListWeights, result schema.WeightValidation, mode schema.OutputMode) error {
	report := validationReport{Weights: weights, Sum: weights.Sum(), WeightValidation: result}

	switch mode {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"Valid", "Sum", "Weights", "Warnings"}, func(cw *csv.Writer) error {
			return cw.Write([]string{
				strconv.FormatBool(result.Valid),
				fixed(report.Sum, 4),
				weights.String(),
				strings.Join(result.Warnings, "|"),
			})
		})
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for weight validation")
	default:
		status := "✅ valid"
		if !result.Valid {
			status = "❌ invalid"
		}
		if _, err := fmt.Fprintf(w, "Weights: %s\n", weights); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Sum: %s\n", fixed(report.Sum, 4)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Status: %s\n", status); err != nil {
			return err
		}
		for _, warning := range result.Warnings {
			if _, err := fmt.Fprintf(w, "⚠️  %s\n", warning); err != nil {
				return err
			}
		}
		return nil
	}
}

// formatFormula renders a weight vector as a weighted sum of normalized metrics.
// Inverted metrics are shown as (1-metric).
func formatFormula(weights schema.PickListWeights) string {
	var parts []string
	for _, m := range schema.AllMetrics {
		v := weights.Get(m)
		if v == 0 {
			continue
		}
		name := m.String()
		if m.Definition().Invert {
			name = "(1-" + name + ")"
		}
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64)+"*"+name)
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

// weightMap keys the non-zero weights by metric.
func weightMap(weights schema.PickListWeights) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range schema.AllMetrics {
		if v := weights.Get(m); v != 0 {
			out[m.String()] = v
		}
	}
	return out
}

// BuildStrategiesRenderModel constructs the presets listing. Computed weights
// override the built-in preset of the same strategy.
func BuildStrategiesRenderModel(computed map[schema.Strategy]schema.PickListWeights) *schema.StrategiesRenderModel {
	var strategies []schema.StrategyInfo
	for _, s := range schema.AllStrategies {
		weights, ok := computed[s]
		if !ok {
			if weights, ok = schema.GetPresetWeights(s); !ok {
				continue
			}
		}
		strategies = append(strategies, schema.StrategyInfo{
			Name:    s,
			Purpose: schema.GetStrategyPurpose(s),
			Weights: weightMap(weights),
			Formula: formatFormula(weights),
		})
	}
	return &schema.StrategiesRenderModel{
		Title:       "Pick List Strategies",
		Description: "Score = weighted sum of metrics normalized to [0,1] across the pool, divided by the weight total",
		Strategies:  strategies,
	}
}

// PrintPresets displays the preset strategies.
func PrintPresets(computed map[schema.Strategy]schema.PickListWeights, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePresets(w, BuildStrategiesRenderModel(computed), cfg.Output)
	}, "Wrote presets")
}

// WritePresets writes the presets listing in the given format.
func WritePresets(w io.Writer, model *schema.StrategiesRenderModel, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		return writeJSON(w, model)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"Strategy", "Purpose", "Formula"}, func(cw *csv.Writer) error {
			for _, s := range model.Strategies {
				if err := cw.Write([]string{string(s.Name), s.Purpose, s.Formula}); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for presets")
	default:
		if _, err := fmt.Fprintf(w, "🏆 %s\n%s\n\n%s\n\n", model.Title, strings.Repeat("=", len(model.Title)+3), model.Description); err != nil {
			return err
		}
		for _, s := range model.Strategies {
			if _, err := fmt.Fprintf(w, "%s: %s\n   Formula: Score = %s\n\n", strings.ToUpper(string(s.Name)), s.Purpose, s.Formula); err != nil {
				return err
			}
		}
		return nil
	}
}
