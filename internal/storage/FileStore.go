package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"medreminder/internal/providers"
	"medreminder/internal/storage/interfaces"
	"medreminder/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	MedicationsKey = "medications"
	HistoryKey     = "medicationHistory"
)

// FileStore keeps one file per key under a directory. Writes go through a
// temp file and a rename so a crash never leaves a half-written document.
type FileStore struct {
	mu         sync.Mutex
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.StoreInterface, error) {
	if err := os.MkdirAll(conf.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create storage dir %s: %w", conf.Storage.Dir, err)
	}
	return &FileStore{
		dir:        conf.Storage.Dir,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (f *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(f.dir, key+".json"+f.compressor.Extension()), nil
}

func (f *FileStore) Save(key string, value any) error {
	start := time.Now()
	fileName, err := f.path(key)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("compress %s: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	f.metrics.ObservePersistenceDuration(key, time.Since(start))
	return nil
}

func (f *FileStore) Load(key string, dst any) bool {
	fileName, err := f.path(key)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Load %s: %s", key, err)
		return false
	}

	f.mu.Lock()
	data, err := os.ReadFile(fileName)
	f.mu.Unlock()
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeApp, "Unable to read %s, starting empty: %s", fileName, err)
		}
		return false
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Corrupt data in %s, starting empty: %s", fileName, err)
		return false
	}

	if err := json.Unmarshal(decompressedData, dst); err != nil {
		f.logger.Warnf(providers.TypeApp, "Corrupt data in %s, starting empty: %s", fileName, err)
		return false
	}
	return true
}

func (f *FileStore) Close() {
	f.compressor.Close()
}
