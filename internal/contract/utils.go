package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/picklist/schema"
)

// Color variables for console output.
var (
	EliteColor  = color.New(color.FgGreen, color.Bold) // top of the board
	StrongColor = color.New(color.FgCyan, color.Bold)
	SolidColor  = color.New(color.FgYellow)
	DepthColor  = color.New(color.FgWhite)
)

// GetColorTier returns a colored tier label for console output (table).
func GetColorTier(score float64) string {
	text := schema.GetPlainTier(score)

	switch text {
	case schema.EliteTier:
		return EliteColor.Sprint(text)
	case schema.StrongTier:
		return StrongColor.Sprint(text)
	case schema.SolidTier:
		return SolidColor.Sprint(text)
	default:
		return DepthColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for saved configurations.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".picklist_store.db"
	}
	return filepath.Join(homeDir, ".picklist_store.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for ranking history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".picklist_history.db"
	}
	return filepath.Join(homeDir, ".picklist_history.db")
}

// TruncateName shortens a team name to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so the suffix leaves room for content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
