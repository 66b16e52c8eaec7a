package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a directory named by the current timestamp under
// root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the experiment setup as indented JSON in config.json.
func (w *Writer) WriteSetup(setup any) error {
	path := filepath.Join(w.baseDir, "config.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "moves", "reward", "terminal", "start_time", "end_time", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.TotalMoves),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			strconv.FormatBool(record.Terminal),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "action", "reward", "ensemble_size", "duration", "episodes",
		"full_playouts", "batches", "iterations_per_second", "nodes", "min_depth", "max_depth"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Action,
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			strconv.Itoa(record.EnsembleSize),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Batches),
			strconv.FormatFloat(record.IterationsPerSecond, 'f', 1, 64),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.MinDepth),
			strconv.Itoa(record.MaxDepth),
		}
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
