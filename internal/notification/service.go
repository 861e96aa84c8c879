package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

// Broadcaster is the transport side of a publish, implemented by
// realtime.Dispatcher.
type Broadcaster interface {
	BroadcastByRooms(n models.Notification)
	SendToUser(userID string, n models.Notification)
	UpdateUnreadCount(userID string, delta int)
}

// Service routes a constructed notification to its recipients: it expands the
// declared targets and pushes the result to live connections, then bumps each
// recipient's unread counter.
//
// REST mutation handlers call Publish after their own persistence succeeded;
// nothing on the broadcast path can fail the originating request.
type Service struct {
	resolver   *Resolver
	dispatcher Broadcaster
	logger     zerolog.Logger
}

func NewService(resolver *Resolver, dispatcher Broadcaster, logger zerolog.Logger) *Service {
	return &Service{
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "notification_service").Logger(),
	}
}

// Publish expands the notification's targets and delivers it.
//
// School-wide role targeting (no declared classes) goes through the room
// fan-out, so the dispatcher never needs the individual ids for that path.
// Class-scoped and explicit-user targeting delivers per resolved user via the
// own-user room. Either way delivery is at-most-once per recipient and the
// whole resolved set gets an unread increment.
//
// The only returned error is ErrNoAudience, a caller bug; delivery misses are
// silent by contract.
func (s *Service) Publish(ctx context.Context, n models.Notification) error {
	ids, err := s.resolver.Resolve(ctx, n)
	if err != nil {
		s.logger.Error().Err(err).
			Str("notification_id", n.ID).
			Str("type", string(n.Type)).
			Msg("refusing to publish")
		return err
	}

	if len(n.TargetClasses) == 0 && len(n.TargetRoles) > 0 {
		// The dispatcher direct-sends any explicit recipient no declared
		// room reaches, keeping delivery at most once per recipient.
		s.dispatcher.BroadcastByRooms(n)
	} else {
		for _, userID := range ids {
			s.dispatcher.SendToUser(userID, n)
		}
	}

	for _, userID := range ids {
		s.dispatcher.UpdateUnreadCount(userID, 1)
	}

	s.logger.Info().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Int("recipients", len(ids)).
		Msg("notification published")
	return nil
}
