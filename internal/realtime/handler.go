package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
)

// Handler serves the websocket endpoint. The connection is authenticated at
// handshake time from the token query parameter (browsers cannot set
// headers on websocket upgrades) and registered under the token's subject.
type Handler struct {
	hub      *Hub
	verifier *auth.Verifier
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(hub *Hub, verifier *auth.Verifier, log zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		verifier: verifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The gateway fronts all origins; same-origin policy is not
			// the auth mechanism here, the token is.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws?token=<bearer>.
func (h *Handler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		// Header fallback for non-browser clients.
		if header := c.Request().Header.Get("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}
	}

	identity, err := h.verifier.Verify(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	client := newClient(conn, h.log)
	h.hub.Register(identity.SubjectID, client)
	go client.writePump()

	h.readLoop(client)
	return nil
}

// readLoop consumes inbound frames until the connection drops, then cleans
// the registry. The only inbound event honoured is the late-binding
// register; everything else is ignored.
func (h *Handler) readLoop(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.close()
	}()

	client.conn.SetReadLimit(maxInboundBytes)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			continue
		}
		if env.Event == eventRegister {
			var userID string
			if err := json.Unmarshal(env.Data, &userID); err == nil && userID != "" {
				h.hub.Register(userID, client)
			}
		}
	}
}
