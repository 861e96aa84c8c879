package notification

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

// ErrNoAudience is returned when a notification declares neither roles nor
// explicit users. Resolving to nobody silently would hide caller bugs, so
// resolution fails loudly instead.
var ErrNoAudience = errors.New("notification declares no audience")

// UserDirectory answers school-wide identity queries.
type UserDirectory interface {
	ListActiveUserIDs(ctx context.Context) ([]string, error)
	ListActiveUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error)
}

// ClassDirectory expands a class to its audience: enrolled students, their
// linked parents, and teachers scheduled to the class. A nil roles filter
// means the whole audience.
type ClassDirectory interface {
	ClassAudience(ctx context.Context, classID string, roles []models.UserRole) ([]string, error)
}

// Resolver expands a notification's declarative targeting into a concrete,
// deduplicated list of user ids.
type Resolver struct {
	users   UserDirectory
	classes ClassDirectory
	logger  zerolog.Logger
}

func NewResolver(users UserDirectory, classes ClassDirectory, logger zerolog.Logger) *Resolver {
	return &Resolver{
		users:   users,
		classes: classes,
		logger:  logger.With().Str("component", "target_resolver").Logger(),
	}
}

// Resolve returns the ordered-unique list of user ids that should receive the
// notification.
//
// Declared classes scope the role targeting: ASSIGNMENT to STUDENTS+PARENTS of
// class C means the students and parents of C, not every student in the
// school. Without classes, roles expand school-wide, and ALL short-circuits
// to every active user. Explicit target users are always unioned in.
//
// A failed query branch contributes nothing and resolution carries on with
// whatever succeeded; partial delivery beats total failure.
func (r *Resolver) Resolve(ctx context.Context, n models.Notification) ([]string, error) {
	if !n.HasAudience() {
		return nil, ErrNoAudience
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(ids []string) {
		for _, id := range ids {
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	if len(n.TargetClasses) > 0 {
		filter := roleFilter(n.TargetRoles)
		for _, classID := range n.TargetClasses {
			ids, err := r.classes.ClassAudience(ctx, classID, filter)
			if err != nil {
				r.logger.Warn().Err(err).Str("class_id", classID).Msg("class audience query failed, skipping branch")
				continue
			}
			add(ids)
		}
	} else if containsAll(n.TargetRoles) {
		ids, err := r.users.ListActiveUserIDs(ctx)
		if err != nil {
			r.logger.Warn().Err(err).Msg("active user query failed, skipping branch")
		} else {
			add(ids)
		}
	} else {
		for _, target := range n.TargetRoles {
			role, ok := models.UserRoleForTarget(target)
			if !ok {
				continue
			}
			ids, err := r.users.ListActiveUserIDsByRole(ctx, role)
			if err != nil {
				r.logger.Warn().Err(err).Str("role", string(role)).Msg("role query failed, skipping branch")
				continue
			}
			add(ids)
		}
	}

	add(n.TargetUsers)

	// The acting user does not receive their own notification unless they
	// are explicitly listed.
	if n.CreatedBy.ID != "" && !contains(n.TargetUsers, n.CreatedBy.ID) {
		out = remove(out, n.CreatedBy.ID)
	}

	return out, nil
}

func roleFilter(targets []models.TargetRole) []models.UserRole {
	if containsAll(targets) {
		return nil
	}
	var roles []models.UserRole
	for _, t := range targets {
		if role, ok := models.UserRoleForTarget(t); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func containsAll(targets []models.TargetRole) bool {
	for _, t := range targets {
		if t == models.TargetAll {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
