package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshot - файл с последним успешно полученным списком заказов.
// Запись атомарна (временный файл, fsync, rename) и выполняется под
// эксклюзивной блокировкой; чтение берет разделяемую блокировку.
type Snapshot struct {
	path string
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

func (s *Snapshot) Path() string {
	return s.path
}

func (s *Snapshot) lockPath() string {
	return s.path + ".lock"
}

// Save полностью заменяет содержимое снимка
func (s *Snapshot) Save(orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	content, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	unlock, err := lockFile(s.lockPath(), true)
	if err != nil {
		return fmt.Errorf("lock snapshot: %w", err)
	}
	defer unlock()

	return atomicWrite(s.path, content)
}

// Load читает снимок; ok=false, если файла нет
func (s *Snapshot) Load() (orders []Order, ok bool, err error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	unlock, err := lockFile(s.lockPath(), false)
	if err != nil {
		return nil, false, fmt.Errorf("lock snapshot: %w", err)
	}
	defer unlock()

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(content, &orders); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return orders, true, nil
}

func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".of-cache-tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
