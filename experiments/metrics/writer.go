package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// AgentConfig describes one agent of an experiment.
type AgentConfig struct {
	ID          int
	Searcher    string // "flat" or "mcts"
	Goroutines  int
	Simulations int           // Flat Monte Carlo playouts per candidate
	Episodes    int           // MCTS episodes per move
	Duration    time.Duration // MCTS time per move
}

type GameRecord struct {
	ID         int
	Vertical   int // AgentConfig.ID
	Horizontal int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// gameRow is the parquet layout of a GameRecord.
type gameRow struct {
	ID         int32  `parquet:"id"`
	Vertical   int32  `parquet:"vertical"`
	Horizontal int32  `parquet:"horizontal"`
	Winner     string `parquet:"winner,dict"`
	Score      int32  `parquet:"score"`
	StartTime  int64  `parquet:"start_time_ms"`
	DurationMs int64  `parquet:"duration_ms"`
	TotalMoves int32  `parquet:"total_moves"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> to hold the experiment files.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
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

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "searcher", "goroutines", "simulations", "episodes", "duration"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Searcher,
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Simulations),
			strconv.Itoa(config.Episodes),
			config.Duration.String(),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "vertical", "horizontal", "starting_player", "winner", "score", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Vertical),
			strconv.Itoa(record.Horizontal),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.Score),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "searcher", "candidates", "duration", "episodes", "playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Move),
			record.Searcher,
			strconv.Itoa(record.Candidates),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Playouts),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteGameRecordsParquet stores the game records as zstd-compressed
// parquet, written to a temp file and renamed into place.
func (w *Writer) WriteGameRecordsParquet(records []GameRecord) error {
	rows := make([]gameRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, gameRow{
			ID:         int32(record.ID),
			Vertical:   int32(record.Vertical),
			Horizontal: int32(record.Horizontal),
			Winner:     record.Winner,
			Score:      int32(record.Score),
			StartTime:  record.StartTime.UnixMilli(),
			DurationMs: record.Duration.Milliseconds(),
			TotalMoves: int32(record.TotalMoves),
		})
	}

	outPath := filepath.Join(w.baseDir, "game_records.parquet")
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "game_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadGameRecordsParquet loads records written by WriteGameRecordsParquet.
// Times come back with millisecond precision and EndTime is rebuilt from
// the duration.
func ReadGameRecordsParquet(path string) ([]GameRecord, error) {
	rows, err := parquet.ReadFile[gameRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	records := make([]GameRecord, 0, len(rows))
	for _, row := range rows {
		start := time.UnixMilli(row.StartTime).UTC()
		duration := time.Duration(row.DurationMs) * time.Millisecond
		records = append(records, GameRecord{
			ID:         int(row.ID),
			Vertical:   int(row.Vertical),
			Horizontal: int(row.Horizontal),
			GameMetric: GameMetric{
				Winner:     row.Winner,
				Score:      int(row.Score),
				StartTime:  start,
				EndTime:    start.Add(duration),
				Duration:   duration,
				TotalMoves: int(row.TotalMoves),
			},
		})
	}
	return records, nil
}
