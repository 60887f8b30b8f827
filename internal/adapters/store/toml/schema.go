package toml

import (
	"fmt"

	"github.com/redzonehq/redzone/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
	Zones    []zoneSchema    `toml:"zones"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported zones schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	UserID          string `toml:"user_id"`
	ZoneName        string `toml:"zone_name"`
	DefaultDuration int    `toml:"default_duration"`
	DefaultInterval int    `toml:"default_interval"`
	IsActive        bool   `toml:"is_active"`
}

type zoneSchema struct {
	// UserKey is userID + "-" + zone name; the composite key keeps stored
	// rows compatible with a future multi-group layout.
	UserKey   string `toml:"user_key"`
	BeginDate string `toml:"begin_date"`
	EndDate   string `toml:"end_date"`
	IsActive  bool   `toml:"is_active"`
}

func userKey(userID domain.UserID) string {
	return string(userID) + "-" + domain.DefaultZoneName
}

func toProfileSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		UserID:          string(profile.UserID),
		ZoneName:        profile.ZoneName,
		DefaultDuration: profile.DefaultDuration,
		DefaultInterval: profile.DefaultInterval,
		IsActive:        profile.Active,
	}
}

func fromProfileSchema(entry profileSchema) domain.Profile {
	zoneName := entry.ZoneName
	if zoneName == "" {
		zoneName = domain.DefaultZoneName
	}

	return domain.Profile{
		UserID:          domain.UserID(entry.UserID),
		ZoneName:        zoneName,
		DefaultDuration: entry.DefaultDuration,
		DefaultInterval: entry.DefaultInterval,
		Active:          entry.IsActive,
	}
}

func toZoneSchema(zone domain.Zone) zoneSchema {
	return zoneSchema{
		UserKey:   userKey(zone.UserID),
		BeginDate: zone.BeginDate.String(),
		EndDate:   zone.EndDate.String(),
		IsActive:  zone.Active,
	}
}

func fromZoneSchema(entry zoneSchema, userID domain.UserID) (domain.Zone, error) {
	begin, err := domain.ParseDate(entry.BeginDate)
	if err != nil {
		return domain.Zone{}, fmt.Errorf("decode zone begin date: %w", err)
	}
	end, err := domain.ParseDate(entry.EndDate)
	if err != nil {
		return domain.Zone{}, fmt.Errorf("decode zone end date: %w", err)
	}

	return domain.Zone{
		UserID:    userID,
		BeginDate: begin,
		EndDate:   end,
		Active:    entry.IsActive,
	}, nil
}
