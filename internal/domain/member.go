package domain

import "time"

// MemberTTL bounds how long a cached member snapshot stays valid after its
// last write.
const MemberTTL = 48 * time.Hour

type Member struct {
	UserID string
	Name   string
	Nick   string
}

type MemberPage struct {
	Members []Member
	Next    string
}

// DirectoryID keys the member cache per platform guild.
func DirectoryID(platform, guildID string) string {
	return platform + ":" + guildID
}

type MemberSnapshot struct {
	DirectoryID string
	Member      Member
	ExpiresAt   time.Time
}

func (s MemberSnapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
