package analyzer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"munroaccess.org/internal/models"
)

// ResultsFile is an append-only JSONL store of analyzed results. Appends
// are serialized; a completed line is flushed before Append returns, so a
// killed run loses at most the unit in flight.
type ResultsFile struct {
	mu   sync.Mutex
	file *os.File
}

// OpenResultsFile opens (creating if necessary) the results file for
// appending, creating parent directories as needed.
func OpenResultsFile(path string) (*ResultsFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create results directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	return &ResultsFile{file: file}, nil
}

// Append writes one result as a single JSON line.
func (r *ResultsFile) Append(result models.Result) error {
	line, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID(), err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(line); err != nil {
		return fmt.Errorf("failed to append result %s: %w", result.ID(), err)
	}
	return nil
}

func (r *ResultsFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// ReadResults loads every result from a JSONL file. A missing file is not
// an error; it reads as an empty dataset so first runs start clean.
func ReadResults(path string) ([]models.Result, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var results []models.Result
	scanner := bufio.NewScanner(file)
	// Results with many legs run long; the default line limit is too small.
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var result models.Result
		if err := json.Unmarshal(line, &result); err != nil {
			return nil, fmt.Errorf("failed to decode results line %d: %w", len(results)+1, err)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	return results, nil
}

// ReadCompletedIDs returns the (start, target) pairs already present in a
// JSONL file, used to skip finished work when a run is resumed.
func ReadCompletedIDs(path string) (map[models.ResultID]bool, error) {
	results, err := ReadResults(path)
	if err != nil {
		return nil, err
	}
	completed := make(map[models.ResultID]bool, len(results))
	for _, result := range results {
		completed[result.ID()] = true
	}
	return completed, nil
}
