package domain

import "errors"

// Platform identifies one of the product stores linked to a unified identity.
type Platform string

const (
	PlatformFreelancer    Platform = "freelancer"
	PlatformCareerCopilot Platform = "career_copilot"
)

// AllPlatforms is the closed set of platforms this deployment federates.
var AllPlatforms = []Platform{PlatformFreelancer, PlatformCareerCopilot}

var ErrUnknownPlatform = errors.New("unknown platform")
var ErrPlatformNotLinked = errors.New("platform not linked")
var ErrPlatformUnavailable = errors.New("platform store unavailable")
var ErrPlatformRecordMissing = errors.New("platform record missing")

// ParsePlatform validates a platform name against the closed enum.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range AllPlatforms {
		if Platform(s) == p {
			return p, nil
		}
	}
	return "", ErrUnknownPlatform
}

// PlatformLink maps a unified identity to a platform-local user id. Links
// are created during each product's onboarding and are read-only here.
// At most one link exists per (unified user, platform) pair.
type PlatformLink struct {
	UnifiedUserID  string   `json:"unified_user_id"`
	Platform       Platform `json:"platform"`
	PlatformUserID string   `json:"platform_user_id"`
}

// PlatformAssertion is the output of a token exchange: a platform-scoped
// identity. It never carries another platform's id.
type PlatformAssertion struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
