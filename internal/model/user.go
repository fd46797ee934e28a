package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
//
// Implementations index one canonical record per ID under both its email
// and mobile keys; every mutation keeps both keys pointing at the same ID.
type UserStore interface {
	GetByKey(ctx context.Context, key string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Insert(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*User) error) (User, error)
	Count(ctx context.Context) (int, error)
}

// ActiveSessionStore persists the "current session" pointer of a client.
type ActiveSessionStore interface {
	GetActive(ctx context.Context, clientID string) (string, error)
	SetActive(ctx context.Context, clientID, token string) error
	ClearActive(ctx context.Context, clientID string) error
}

// MembershipType is the entitlement tier of a user.
type MembershipType string

const (
	MembershipFree    MembershipType = "Free"
	MembershipPremium MembershipType = "Premium"
)

// ActivityKind selects an activity counter.
type ActivityKind string

const (
	ActivityChat       ActivityKind = "chat"
	ActivityFileUpload ActivityKind = "file_upload"
	ActivityReport     ActivityKind = "report"
)

// Valid reports whether k names a known counter.
func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityChat, ActivityFileUpload, ActivityReport:
		return true
	}
	return false
}

// ActivityStats holds usage counters. Counters only grow.
type ActivityStats struct {
	TotalChats       int64 `json:"total_chats"`
	FilesUploaded    int64 `json:"files_uploaded"`
	ReportsGenerated int64 `json:"reports_generated"`
}

// Increment bumps the counter selected by kind.
func (s *ActivityStats) Increment(kind ActivityKind) {
	switch kind {
	case ActivityChat:
		s.TotalChats++
	case ActivityFileUpload:
		s.FilesUploaded++
	case ActivityReport:
		s.ReportsGenerated++
	}
}

// User represents a stored user with authentication material.
type User struct {
	ID               uuid.UUID      `json:"id"`
	FullName         string         `json:"full_name"`
	Email            string         `json:"email"`
	Mobile           string         `json:"mobile"`
	CredentialDigest string         `json:"credential_digest"`
	RegisteredAt     time.Time      `json:"registered_at"`
	LastLoginAt      time.Time      `json:"last_login_at"`
	Membership       MembershipType `json:"membership"`
	PreferredRole    string         `json:"preferred_role,omitempty"`
	ProfilePicture   string         `json:"profile_picture,omitempty"`
	Stats            ActivityStats  `json:"stats"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Keys returns the normalized alternate lookup keys of the user.
func (u User) Keys() []string {
	keys := make([]string, 0, 2)
	if k := NormalizeEmail(u.Email); k != "" {
		keys = append(keys, k)
	}
	if k := NormalizeMobile(u.Mobile); k != "" {
		keys = append(keys, k)
	}
	return keys
}

// Profile returns the read-only projection handed to callers.
func (u User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Mobile:         u.Mobile,
		RegisteredAt:   u.RegisteredAt,
		LastLoginAt:    u.LastLoginAt,
		Membership:     u.Membership,
		PreferredRole:  u.PreferredRole,
		ProfilePicture: u.ProfilePicture,
		Stats:          u.Stats,
	}
}

// Profile is a user without credential material.
type Profile struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	Mobile         string
	RegisteredAt   time.Time
	LastLoginAt    time.Time
	Membership     MembershipType
	PreferredRole  string
	ProfilePicture string
	Stats          ActivityStats
}

// IsPremium is the entitlement gate read by the rest of the application.
func (p Profile) IsPremium() bool {
	return p.Membership == MembershipPremium
}

// ProfileUpdate lists the mutable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName       *string
	Email          *string
	Mobile         *string
	PreferredRole  *string
	ProfilePicture *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Mobile == nil &&
		p.PreferredRole == nil && p.ProfilePicture == nil
}

// Apply merges the update into u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.Mobile != nil {
		u.Mobile = NormalizeMobile(*p.Mobile)
	}
	if p.PreferredRole != nil {
		u.PreferredRole = strings.TrimSpace(*p.PreferredRole)
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = strings.TrimSpace(*p.ProfilePicture)
	}
}

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var mobileReplacer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizeMobile strips formatting characters from a phone number.
func NormalizeMobile(s string) string {
	return mobileReplacer.Replace(strings.TrimSpace(s))
}

// NormalizeKey canonicalizes a lookup key that may be an email or a mobile.
func NormalizeKey(s string) string {
	if strings.Contains(s, "@") {
		return NormalizeEmail(s)
	}
	return NormalizeMobile(s)
}
