// Package main provides a performance benchmarking tool for the picklist CLI.
// It writes synthetic events of increasing size, ranks each one with several
// commands, treats the first successful run as cold and averages the rest as
// warm, and saves the timings to a CSV file.
//
// Prerequisites:
// - picklist binary installed and available in PATH
//
// Usage: go run benchmark/main.go [runs]
//
//	runs: number of runs per command (default 4)
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/huangsam/picklist/schema"
)

// BenchmarkResult holds the timings of one command on one event size.
type BenchmarkResult struct {
	Event       string
	Teams       int
	Command     string
	NoHistory   string
	ColdTime    string
	WarmTime    string
	WithHistory string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir   string
	Timeout   time.Duration
	Runs      int
	TeamSizes []int
	Commands  map[string][]string
}

func main() {
	runs := 4
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 2 {
			fmt.Printf("Usage: %s [runs >= 2]\n", os.Args[0])
			os.Exit(1)
		}
		runs = n
	}

	dataDir, err := os.MkdirTemp("", "picklist-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create data dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(dataDir) }()

	config := BenchmarkConfig{
		DataDir:   dataDir,
		Timeout:   2 * time.Minute,
		Runs:      runs,
		TeamSizes: []int{40, 200, 1000, 5000},
		Commands: map[string][]string{
			"generate": {"generate", "--output", "csv"},
			"columns":  {"columns", "--columns", "balanced,offensive,defensive,reliable,opr:desc", "--output", "csv"},
			"stats":    {"stats", "--output", "json"},
		},
	}

	if _, err := exec.LookPath("picklist"); err != nil {
		fmt.Printf("Prerequisites check failed: picklist binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// writeEvent writes a synthetic event with n teams and returns its key.
func writeEvent(dir string, n int) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(n), 2024))
	key := fmt.Sprintf("2024bench%d", n)

	stats := schema.EventStats{EventKey: key, EventName: fmt.Sprintf("Benchmark Event (%d teams)", n)}
	for i := range n {
		opr := 10 + rng.Float64()*80
		dpr := 10 + rng.Float64()*30
		team := schema.RawTeamData{
			TeamNumber:    i + 1,
			MatchesPlayed: 8 + rng.IntN(5),
			OPR:           opr,
			DPR:           dpr,
			CCWM:          opr - dpr,
		}
		// Leave scouting data out for a fifth of the teams
		if rng.IntN(5) != 0 {
			team.AvgAutoScore = schema.Float64Ptr(rng.Float64() * 30)
			team.AvgTeleopScore = schema.Float64Ptr(rng.Float64() * 50)
			team.AvgEndgameScore = schema.Float64Ptr(rng.Float64() * 15)
			team.ReliabilityScore = schema.Float64Ptr(0.5 + rng.Float64()*0.5)
			team.AvgDriverSkill = schema.Float64Ptr(1 + rng.Float64()*4)
			team.AvgDefenseRating = schema.Float64Ptr(1 + rng.Float64()*4)
			team.AvgSpeedRating = schema.Float64Ptr(1 + rng.Float64()*4)
		}
		stats.Teams = append(stats.Teams, team)
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return "", err
	}
	return key, os.WriteFile(filepath.Join(dir, key+".json"), data, 0o644)
}

// runBenchmarks executes every command against every event size.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d event sizes, %v timeout, %d runs per command\n",
		len(config.TeamSizes), config.Timeout, config.Runs)

	for _, size := range config.TeamSizes {
		event, err := writeEvent(config.DataDir, size)
		if err != nil {
			fmt.Printf("Skipping %d teams: %v\n", size, err)
			continue
		}
		fmt.Printf("Benchmarking %s\n", event)

		for _, command := range []string{"generate", "columns", "stats"} {
			results = append(results, runBenchmarkSuite(config, event, size, command))
		}
	}

	return results
}

// runBenchmarkSuite runs one command without and with history recording.
func runBenchmarkSuite(config BenchmarkConfig, event string, size int, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, event)

	home, err := os.MkdirTemp("", "picklist-home-*")
	if err != nil {
		return BenchmarkResult{Event: event, Teams: size, Command: command, NoHistory: "ERROR"}
	}
	defer func() { _ = os.RemoveAll(home) }()

	cold, warm := runBenchmark(config, home, event, command, "none")
	_, history := runBenchmark(config, home, event, command, "sqlite")

	result := BenchmarkResult{
		Event:       event,
		Teams:       size,
		Command:     command,
		NoHistory:   average(append([]float64{cold}, warm...)),
		ColdTime:    "TIMEOUT",
		WarmTime:    average(warm),
		WithHistory: average(history),
	}
	if cold > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", cold)
	}

	fmt.Printf("  No history: %s, Cold: %s, Warm: %s, With history: %s\n",
		result.NoHistory, result.ColdTime, result.WarmTime, result.WithHistory)
	return result
}

// runBenchmark runs a command config.Runs times and returns the cold time and warm times.
func runBenchmark(config BenchmarkConfig, home, event, command, historyBackend string) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, config.Commands[command]...)
	args = append(args, "--event", event, "--data", config.DataDir, "--history-backend", historyBackend)

	var times []float64
	for range config.Runs {
		start := time.Now()

		cmd := exec.Command("picklist", args...)
		cmd.Env = append(os.Environ(), "HOME="+home)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// average formats the mean of the timings.
func average(times []float64) string {
	var sum float64
	var n int
	for _, t := range times {
		if t > 0 {
			sum += t
			n++
		}
	}
	if n == 0 {
		return "TIMEOUT"
	}
	return fmt.Sprintf("%.3fs", sum/float64(n))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("picklist_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"event", "teams", "cmd", "no_history_avg", "cold_time", "warm_avg", "history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		record := []string{r.Event, strconv.Itoa(r.Teams), r.Command, r.NoHistory, r.ColdTime, r.WarmTime, r.WithHistory}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"generate", "columns", "stats"} {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %5d teams: No history: %s, Cold: %s, Warm: %s, With history: %s\n",
					r.Teams, r.NoHistory, r.ColdTime, r.WarmTime, r.WithHistory)
			}
		}
	}
}
