package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/authz"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer in front of the
	// router; the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated requests to websocket connections and hands
// them to the registry.
type Handler struct {
	registry  *Registry
	jwtSecret string
	logger    zerolog.Logger
}

func NewHandler(registry *Registry, jwtSecret string, logger zerolog.Logger) *Handler {
	return &Handler{
		registry:  registry,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "ws_handler").Logger(),
	}
}

// ServeWS authenticates the handshake and starts the connection's pumps. A
// missing or invalid token rejects the request before the upgrade, so no
// partial connection state is ever created.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Missing auth token", http.StatusUnauthorized)
		return
	}
	identity, err := authz.VerifyToken(h.jwtSecret, token)
	if err != nil {
		http.Error(w, "Invalid auth token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, identity.UserID, identity.Role, h.registry, h.logger)
	if displaced := h.registry.Register(client); displaced != nil {
		displaced.closeSend()
	}

	go client.writePump()
	go client.readPump()
}

// bearerToken pulls the handshake token from the query string or the
// Authorization header, whichever is present.
func bearerToken(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
