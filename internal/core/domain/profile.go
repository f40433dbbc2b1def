package domain

import "time"

// PlatformRecord is an opaque per-platform profile document. The federation
// layer never interprets its fields, only relays them.
type PlatformRecord map[string]any

// IdentitySummary is the master-store half of an aggregated profile.
type IdentitySummary struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// PlatformSection holds one platform's contribution to an aggregated
// profile. A linked platform whose store could not be read keeps
// Active=true with Available=false rather than failing the aggregation.
type PlatformSection struct {
	Active    bool           `json:"active"`
	Available bool           `json:"available"`
	Record    PlatformRecord `json:"record,omitempty"`
}

// ProfileStats summarizes link and availability counts for a profile view.
type ProfileStats struct {
	LinkedPlatforms    int `json:"linked_platforms"`
	AvailablePlatforms int `json:"available_platforms"`
}

// ProfileView is the merged identity view across the master store and all
// linked platform stores.
type ProfileView struct {
	Identity  IdentitySummary              `json:"identity"`
	Platforms map[Platform]PlatformSection `json:"platforms"`
	Stats     ProfileStats                 `json:"stats"`
}
