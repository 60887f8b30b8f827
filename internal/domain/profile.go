package domain

import (
	"fmt"
	"strings"
)

// Profile is per-user configuration, distinct from the user's recorded
// zones. One profile per user today; provisioned lazily on first contact.
type Profile struct {
	UserID          UserID
	ZoneName        string
	DefaultDuration int
	DefaultInterval int
	Active          bool
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.UserID)) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(p.ZoneName) == "" {
		return fmt.Errorf("zone name is required")
	}
	if p.DefaultDuration <= 0 {
		return fmt.Errorf("default duration must be positive, got %d", p.DefaultDuration)
	}
	if p.DefaultInterval <= 0 {
		return fmt.Errorf("default interval must be positive, got %d", p.DefaultInterval)
	}

	return nil
}
