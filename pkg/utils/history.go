package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SubmissionRecord is one entry in the local submission history file.
type SubmissionRecord struct {
	JobId       uint32    `json:"job_id"`
	JobName     string    `json:"job_name"`
	Partition   string    `json:"partition"`
	ConfigPath  string    `json:"config_path"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// HistoryManager persists submission records to a JSON file.
type HistoryManager struct {
	filePath string
	mu       sync.RWMutex
}

func NewHistoryManager(filePath string) (*HistoryManager, error) {
	hm := &HistoryManager{
		filePath: filePath,
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create parent dir %s failed: %w", dir, err)
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if err := os.WriteFile(filePath, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("create empty file %s failed: %w", filePath, err)
		}
	}

	return hm, nil
}

func (hm *HistoryManager) load() ([]SubmissionRecord, error) {
	data, err := os.ReadFile(hm.filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s failed: %w", hm.filePath, err)
	}

	var records []SubmissionRecord
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", hm.filePath, err)
	}
	return records, nil
}

// Save appends one record to the history file.
func (hm *HistoryManager) Save(record SubmissionRecord) error {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	records, err := hm.load()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history failed: %w", err)
	}
	if err := os.WriteFile(hm.filePath, data, 0644); err != nil {
		return fmt.Errorf("write %s failed: %w", hm.filePath, err)
	}
	return nil
}

// List returns all recorded submissions, oldest first.
func (hm *HistoryManager) List() ([]SubmissionRecord, error) {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	return hm.load()
}
