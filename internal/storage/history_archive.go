package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"medreminder/internal/models"
	"medreminder/internal/providers"
	"medreminder/internal/storage/interfaces"
	"medreminder/internal/structures"
)

const (
	archiveSuffix = ".cold.zst"
	monthLayout   = "2006-01"
)

var ErrInvalidMonth = errors.New("invalid archive month")

// ArchiveFile is the on-disk format for one month of archived history.
type ArchiveFile struct {
	Entries []models.HistoryEntry `json:"entries"`
}

// HistoryArchive holds history entries evicted from the live log, one
// zstd-compressed file per calendar month of the entry time.
type HistoryArchive struct {
	mu         sync.Mutex
	dir        string
	pending    map[string][]models.HistoryEntry // month → evicted entries not yet on disk
	ttl        time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewHistoryArchive(conf *structures.Config, logger providers.Logger) (interfaces.ArchiveInterface, error) {
	dir := conf.History.ArchiveDir
	if dir == "" {
		dir = filepath.Join(conf.Storage.Dir, "archive")
	}
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	return &HistoryArchive{
		dir:        dir,
		pending:    make(map[string][]models.HistoryEntry),
		ttl:        conf.History.ArchiveTTL,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (ha *HistoryArchive) Evict(entries []models.HistoryEntry) {
	ha.mu.Lock()
	defer ha.mu.Unlock()
	for _, e := range entries {
		month := e.Time.UTC().Format(monthLayout)
		ha.pending[month] = append(ha.pending[month], e)
	}
}

// Flush merges pending entries into their month files and drops months
// that ended more than the archive TTL ago.
func (ha *HistoryArchive) Flush() error {
	ha.mu.Lock()
	defer ha.mu.Unlock()

	if err := os.MkdirAll(ha.dir, 0o755); err != nil {
		return err
	}

	for month, entries := range ha.pending {
		af, err := ha.loadFile(month)
		if err != nil {
			if err := ha.quarantine(month, err); err != nil {
				return err
			}
		}
		if af == nil {
			af = &ArchiveFile{}
		}
		af.Entries = mergeNewestFirst(af.Entries, entries)
		if err := ha.writeFile(month, af); err != nil {
			return err
		}
		// commit only after a successful write
		delete(ha.pending, month)
	}

	if ha.ttl > 0 {
		months, err := ha.monthsLocked()
		if err != nil {
			return err
		}
		cutoff := ha.now().Add(-ha.ttl)
		for _, month := range months {
			start, _ := time.Parse(monthLayout, month)
			if start.AddDate(0, 1, 0).Before(cutoff) {
				ha.logger.Infof(providers.TypeApp, "Dropping archived history for %s", month)
				os.Remove(ha.filePath(month))
			}
		}
	}
	return nil
}

func (ha *HistoryArchive) Months() ([]string, error) {
	ha.mu.Lock()
	defer ha.mu.Unlock()
	return ha.monthsLocked()
}

func (ha *HistoryArchive) monthsLocked() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(ha.dir, "*"+archiveSuffix))
	if err != nil {
		return nil, err
	}
	months := make([]string, 0, len(files))
	for _, f := range files {
		months = append(months, strings.TrimSuffix(filepath.Base(f), archiveSuffix))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// Read returns archived entries for month ("2006-01"), newest first,
// including entries still pending a flush.
func (ha *HistoryArchive) Read(month string) ([]models.HistoryEntry, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	ha.mu.Lock()
	defer ha.mu.Unlock()

	var out []models.HistoryEntry
	af, err := ha.loadFile(month)
	if err != nil {
		ha.logger.Errorf(providers.TypeApp, "Failed to read archive for %s: %s", month, err)
	} else if af != nil {
		out = af.Entries
	}
	return mergeNewestFirst(out, ha.pending[month]), nil
}

// loadFile reads one month file. A missing file yields nil without error.
func (ha *HistoryArchive) loadFile(month string) (*ArchiveFile, error) {
	path := ha.filePath(month)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := ha.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}

	var af ArchiveFile
	if err := json.Unmarshal(decompressed, &af); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &af, nil
}

// quarantine moves an unreadable month file aside so a flush never
// overwrites entries it could not read.
func (ha *HistoryArchive) quarantine(month string, cause error) error {
	path := ha.filePath(month)
	aside := fmt.Sprintf("%s.corrupt-%d", path, ha.now().Unix())
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("archive %s unreadable (%v), move aside: %w", month, cause, err)
	}
	ha.logger.Warnf(providers.TypeApp, "Archive file for %s unreadable, moved to %s: %s", month, aside, cause)
	return nil
}

func (ha *HistoryArchive) writeFile(month string, af *ArchiveFile) error {
	jsonData, err := json.Marshal(af)
	if err != nil {
		return err
	}

	compressed, err := ha.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	path := ha.filePath(month)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

func (ha *HistoryArchive) filePath(month string) string {
	return filepath.Join(ha.dir, month+archiveSuffix)
}

func (ha *HistoryArchive) Close() {
	ha.compressor.Close()
}

// mergeNewestFirst combines two entry sets, dropping duplicate ids.
func mergeNewestFirst(a, b []models.HistoryEntry) []models.HistoryEntry {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]models.HistoryEntry, 0, len(a)+len(b))
	for _, set := range [][]models.HistoryEntry{a, b} {
		for _, e := range set {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}
