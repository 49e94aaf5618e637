package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonathan/talent-ranker/internal/types"
)

// Provider resolves a dataset identifier to its cleaned records.
type Provider interface {
	Load(ctx context.Context, datasetID string) ([]types.Record, error)
}

const (
	cacheTTL   = 10 * time.Minute
	cacheSweep = 30 * time.Minute
)

// FileProvider loads datasets from CSV or JSON files under a base directory.
// Parsed datasets are cached with a TTL so repeated queries against the same
// dataset do not re-read and re-clean the file.
type FileProvider struct {
	dir   string
	cache *gocache.Cache
}

// NewFileProvider creates a provider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{
		dir:   dir,
		cache: gocache.New(cacheTTL, cacheSweep),
	}
}

// Load resolves datasetID to a file under the base directory and returns its
// cleaned records. The id may include the extension or omit it, in which case
// .csv then .json is tried.
func (p *FileProvider) Load(ctx context.Context, datasetID string) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, found := p.cache.Get(datasetID); found {
		return cached.([]types.Record), nil
	}

	path, err := p.resolve(datasetID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", datasetID, err)
	}

	var records []types.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = ParseCSV(data)
	case ".json":
		records, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", datasetID, err)
	}

	p.cache.SetDefault(datasetID, records)
	return records, nil
}

// List returns the dataset ids (file names without extension) available under
// the base directory.
func (p *FileProvider) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".csv" || ext == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *FileProvider) resolve(datasetID string) (string, error) {
	candidates := []string{datasetID}
	if filepath.Ext(datasetID) == "" {
		candidates = []string{datasetID + ".csv", datasetID + ".json"}
	}
	for _, name := range candidates {
		path := filepath.Join(p.dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("dataset %s not found in %s", datasetID, p.dir)
}

// Fields returns the sorted union of field names across records, used to
// describe the dataset schema to the criteria generator.
func Fields(records []types.Record) []string {
	seen := make(map[string]bool)
	for _, record := range records {
		for k := range record {
			seen[k] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
