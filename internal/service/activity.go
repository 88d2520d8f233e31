package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
	"carrental-backoffice/internal/repository"

	"github.com/google/uuid"
)

// RequestMeta carries request-scoped audit metadata from the transport layer.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

type activityService struct {
	logs  repository.ActivityLogRepository
	email EmailService
	now   Clock
}

func NewActivityService(logs repository.ActivityLogRepository, email EmailService, now Clock) ActivityService {
	if now == nil {
		now = time.Now
	}
	return &activityService{logs: logs, email: email, now: now}
}

// Log appends one immutable audit row. It runs after the primary mutation
// has committed and must never fail the caller; persistence errors are
// logged and escalated to the operational alert channel.
func (s *activityService) Log(ctx context.Context, actor domain.Actor, action, description string, target map[string]any) {
	meta := RequestMetaFrom(ctx)

	entry := &domain.ActivityLog{
		EventID:     uuid.NewString(),
		UserType:    actor.UserType(),
		Action:      action,
		Description: description,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		CreatedOn:   s.now(),
	}

	if actor.Kind == domain.ActorKindAuthenticated {
		id := actor.UserID
		entry.UserID = &id
		entry.Username = actor.Username
		entry.UserRoles = joinActorRoles(actor.Roles)
	} else if actor.Kind == domain.ActorKindSystem {
		entry.Username = actor.Username
	}

	if target != nil {
		data, err := json.Marshal(target)
		if err != nil {
			logger.Error("activity log payload not serializable", "action", action, "error", err)
		} else {
			entry.TargetData = string(data)
		}
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		logger.Error("activity log write failed", "action", action, "event_id", entry.EventID, "error", err)
		if s.email != nil {
			body := fmt.Sprintf("Activity log write failed.\n\nEvent: %s\nAction: %s\nActor: %s (%s)\nError: %v",
				entry.EventID, action, entry.Username, entry.UserType, err)
			if alertErr := s.email.SendOpsAlert(ctx, "Audit trail write failure", body); alertErr != nil {
				logger.Error("ops alert delivery failed", "error", alertErr)
			}
		}
	}
}

func (s *activityService) List(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int32, error) {
	return s.logs.List(ctx, filter)
}

func joinActorRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
