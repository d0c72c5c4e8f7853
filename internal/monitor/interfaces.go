package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindscape/be/internal/mood"
	"mindscape/be/internal/user"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("not allowed to access this user")
	ErrInvalidRole   = errors.New("role must be parent, guardian or police")
	ErrNoRole        = errors.New("a monitoring role is required")
	ErrSelfMonitor   = errors.New("cannot monitor yourself")
	ErrDuplicate     = errors.New("monitoring request already exists")
	ErrInvalidInput  = errors.New("invalid monitoring input")
	ErrAlreadyClosed = errors.New("alert already resolved")
)

// HealthMoodLimit caps the moods returned in a health report.
const HealthMoodLimit = 30

type Controller interface {
	GetRole(ctx *gin.Context)
	SetRole(ctx *gin.Context)
	RequestMonitoring(ctx *gin.Context)
	PendingRequests(ctx *gin.Context)
	ApproveRequest(ctx *gin.Context)
	RemoveRequest(ctx *gin.Context)
	MonitoredUsers(ctx *gin.Context)
	Monitors(ctx *gin.Context)
	Health(ctx *gin.Context)
	ResolveAlert(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
	RequestMonitoring(ctx context.Context, monitorID uuid.UUID, req *MonitorRequest) (*Relationship, error)
	PendingRequests(ctx context.Context, userID uuid.UUID) ([]PendingRequest, error)
	Approve(ctx context.Context, userID, relationshipID uuid.UUID) error
	Remove(ctx context.Context, userID, relationshipID uuid.UUID) error
	MonitoredUsers(ctx context.Context, monitorID uuid.UUID) ([]MonitoredUser, error)
	// Monitors lists who may currently view userID's data.
	Monitors(ctx context.Context, userID uuid.UUID) ([]ActiveMonitor, error)
	Health(ctx context.Context, monitorID, userID uuid.UUID) (*HealthReport, error)
	ResolveAlert(ctx context.Context, monitorID, alertID uuid.UUID) (*Alert, error)
}

type Repository interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
	SetRole(ctx context.Context, userID uuid.UUID, role string) error

	CreateRelationship(ctx context.Context, rel *Relationship) error
	GetRelationship(ctx context.Context, id uuid.UUID) (Relationship, error)
	ListPending(ctx context.Context, monitoredUserID uuid.UUID) ([]PendingRequest, error)
	Approve(ctx context.Context, id uuid.UUID) error
	DeleteRelationship(ctx context.Context, id uuid.UUID) error
	ListMonitored(ctx context.Context, monitorID uuid.UUID) ([]MonitoredUser, error)
	ListMonitors(ctx context.Context, monitoredUserID uuid.UUID) ([]ActiveMonitor, error)
	IsApprovedMonitor(ctx context.Context, monitorID, userID uuid.UUID) (bool, error)

	AlertRepository
	GetAlert(ctx context.Context, id uuid.UUID) (Alert, error)
	ListUnresolvedAlerts(ctx context.Context, userID uuid.UUID) ([]Alert, error)
	ResolveAlert(ctx context.Context, id, resolvedBy uuid.UUID, at time.Time) error
}

// AlertRepository is the part of Repository the flagger writes to.
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert *Alert) error
}

// MoodReader is satisfied by mood.Repository.
type MoodReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]mood.Mood, error)
}

// UserFinder is satisfied by user.Service.
type UserFinder interface {
	GetUser(ctx context.Context, req user.GetUserRequest) (*user.GetUserResponse, error)
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type MonitorRequest struct {
	Email            string `json:"email" binding:"required,email"`
	RelationshipType string `json:"relationship_type" binding:"required"`
}
