// Package toml persists profiles and zones in a single versioned TOML file
// with atomic replace-on-write, standing in for the production key-value
// store behind the same narrow port contracts.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	dataPathKey     = "data.path"
	dataFileMode    = 0o600
	dataDirMode     = 0o700
	configDir       = ".redzone"
	dataFile        = "zones.toml"
	tempFilePattern = ".zones-*.toml.tmp"

	// Rows with a begin date at or before this floor are ignored, matching
	// the production table's query condition.
	beginningOfTime = "2000-01-01"
)

type Repository struct {
	dataPath string
	mu       *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.ProfileStore = (*Repository)(nil)
	_ ports.ZoneStore    = (*Repository)(nil)
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDir, dataFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(dataPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	dataPath := cfg.GetString(dataPathKey)
	if dataPath == "" {
		return nil, errors.New("data path is empty")
	}
	dataPath, err = normalizeDataPath(dataPath)
	if err != nil {
		return nil, err
	}

	return &Repository{dataPath: dataPath, mu: lockForPath(dataPath)}, nil
}

func (r *Repository) Get(ctx context.Context, userID domain.UserID) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}

	for _, entry := range file.Profiles {
		if entry.UserID == string(userID) {
			return fromProfileSchema(entry), nil
		}
	}

	return domain.Profile{}, domain.ErrProfileNotFound
}

func (r *Repository) Put(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toProfileSchema(profile)
	updated := false
	for i := range file.Profiles {
		if file.Profiles[i].UserID == encoded.UserID {
			file.Profiles[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Profiles = append(file.Profiles, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) QueryAll(ctx context.Context, userID domain.UserID) ([]domain.Zone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	key := userKey(userID)
	zones := make([]domain.Zone, 0)
	for _, entry := range file.Zones {
		if entry.UserKey != key || entry.BeginDate <= beginningOfTime {
			continue
		}

		zone, err := fromZoneSchema(entry, userID)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	domain.SortZones(zones)
	return zones, nil
}

func (r *Repository) Upsert(ctx context.Context, zone domain.Zone) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toZoneSchema(zone)
	updated := false
	for i := range file.Zones {
		if file.Zones[i].UserKey == encoded.UserKey && file.Zones[i].BeginDate == encoded.BeginDate {
			file.Zones[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Zones = append(file.Zones, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read zones file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode zones file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.dataPath), dataDirMode); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode zones file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.dataPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp zones file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp zones file: %w", err)
	}

	if err := tempFile.Chmod(dataFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp zones file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp zones file: %w", err)
	}

	if err := os.Rename(tempName, r.dataPath); err != nil {
		return fmt.Errorf("replace zones file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.dataPath, dataFileMode); err != nil {
		return fmt.Errorf("chmod zones file: %w", err)
	}

	return nil
}

func normalizeDataPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
