package monitor

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mindscape/be/internal/mood"
)

const (
	RoleParent   = "parent"
	RoleGuardian = "guardian"
	RolePolice   = "police"
)

func validRole(role string) bool {
	switch role {
	case RoleParent, RoleGuardian, RolePolice:
		return true
	}
	return false
}

type Relationship struct {
	ID               uuid.UUID `json:"id" db:"id"`
	MonitorID        uuid.UUID `json:"monitor_id" db:"monitor_id"`
	MonitoredUserID  uuid.UUID `json:"monitored_user_id" db:"monitored_user_id"`
	RelationshipType string    `json:"relationship_type" db:"relationship_type"`
	Approved         bool      `json:"approved" db:"approved"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// PendingRequest is a relationship awaiting consent, with the requester's
// details.
type PendingRequest struct {
	Relationship
	MonitorEmail string `json:"monitor_email" db:"monitor_email"`
	MonitorName  string `json:"monitor_name" db:"monitor_name"`
}

// ActiveMonitor is an approved relationship seen by the monitored user, so
// that consent can be revoked later.
type ActiveMonitor struct {
	Relationship
	MonitorEmail string `json:"monitor_email" db:"monitor_email"`
	MonitorName  string `json:"monitor_name" db:"monitor_name"`
	MonitorRole  string `json:"monitor_role" db:"monitor_role"`
}

type MonitoredUser struct {
	RelationshipID   uuid.UUID `json:"relationship_id" db:"relationship_id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	Email            string    `json:"email" db:"email"`
	DisplayName      string    `json:"display_name" db:"display_name"`
	RelationshipType string    `json:"relationship_type" db:"relationship_type"`
}

type Alert struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	UserID         uuid.UUID      `json:"user_id" db:"user_id"`
	ContentType    string         `json:"content_type" db:"content_type"`
	ContentSnippet string         `json:"content_snippet" db:"content_snippet"`
	FlaggedWords   pq.StringArray `json:"flagged_words" db:"flagged_words"`
	Resolved       bool           `json:"resolved" db:"resolved"`
	ResolvedBy     uuid.NullUUID  `json:"resolved_by" db:"resolved_by"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type ChartPoint struct {
	Date  time.Time `json:"date"`
	Mood  string    `json:"mood"`
	Score int       `json:"score"`
}

type HealthReport struct {
	UserID uuid.UUID    `json:"user_id"`
	Moods  []mood.Mood  `json:"moods"`
	Alerts []Alert      `json:"alerts"`
	Chart  []ChartPoint `json:"chart"`
}

const defaultMoodScore = 3

var moodScores = map[string]int{
	"great":      5,
	"happy":      5,
	"good":       4,
	"okay":       3,
	"sad":        2,
	"low":        2,
	"anxious":    1,
	"angry":      1,
	"depressed":  1,
	"struggling": 1,
}

// MoodScore maps a mood label onto a 1..5 scale. Unknown labels score 3.
func MoodScore(label string) int {
	if score, ok := moodScores[strings.ToLower(strings.TrimSpace(label))]; ok {
		return score
	}
	return defaultMoodScore
}

// chart turns newest-first moods into oldest-first chart points.
func chart(moods []mood.Mood) []ChartPoint {
	points := make([]ChartPoint, len(moods))
	for i, m := range moods {
		points[len(moods)-1-i] = ChartPoint{Date: m.CreatedAt, Mood: m.Mood, Score: MoodScore(m.Mood)}
	}
	return points
}
