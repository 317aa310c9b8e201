package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintConfiguration outputs one saved configuration.
func PrintConfiguration(saved schema.PickListConfiguration, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteConfiguration(w, saved, cfg.Output)
	}, "Wrote configuration")
}

// WriteConfiguration writes a saved configuration as JSON or as a summary
// followed by a table of its columns.
func WriteConfiguration(w io.Writer, saved schema.PickListConfiguration, mode schema.OutputMode) error {
	if mode == schema.JSONOut {
		return writeJSON(w, saved)
	}

	_, _ = fmt.Fprintf(w, "Configuration: %s\n", saved.Name)
	_, _ = fmt.Fprintf(w, "ID:            %s\n", saved.ID)
	_, _ = fmt.Fprintf(w, "Scope:         %s / %s\n", saved.UserID, saved.EventKey)
	_, _ = fmt.Fprintf(w, "Default:       %t\n", saved.IsDefault)
	_, _ = fmt.Fprintf(w, "Updated:       %s\n", saved.UpdatedAt.UTC().Format(time.RFC3339))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Title", "Strategy", "Sort", "Weights"})
	var data [][]string
	for i, col := range saved.Payload.Columns {
		weights := "preset"
		if col.Weights != nil {
			weights = col.Weights.String()
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			columnTitle(col, i),
			string(col.Selection().Strategy),
			sortLabel(col),
			weights,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to write table data: %w", err)
	}
	return table.Render()
}
