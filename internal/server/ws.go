package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena"
	"github.com/codeclash-games/codeclash/internal/arena/match"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10 // a code-update frame plus envelope overhead

	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	once sync.Once
	done chan struct{}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// handleWS upgrades a player connection, binds it to its room session through
// the resume token, and pumps frames both ways until the socket dies.
func (h *Hub) handleWS(manager *arena.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context()).Named("server.ws")

		code, err := strconv.ParseInt(r.URL.Query().Get("code"), 10, 64)
		if err != nil {
			http.Error(w, "bad room code", http.StatusBadRequest)
			return
		}
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		session, err := manager.Room(code)
		if err != nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorf("upgrade: %v", err)
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, sendBuffer),
			done: make(chan struct{}),
		}

		connID := h.register(c)
		session.Execute(connID, match.Resume{Token: token, ConnID: connID})

		go h.writePump(c)
		h.readPump(c, connID, session)

		session.Execute("", match.Disconnect{ConnID: connID})
		h.unregister(connID)
	}
}

func (h *Hub) readPump(c *client, connID string, session *match.Session) {
	logger := logging.DefaultLogger().Named("server.ws.read")

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("read: %v", err)
			}
			return
		}

		var in wireIn
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}

		cmd, err := decodeCommand(in)
		if err != nil {
			continue
		}
		session.Execute(connID, cmd)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case raw := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// decodeCommand maps a wire kind to its command variant. Unknown kinds are
// rejected before they reach a session.
func decodeCommand(in wireIn) (match.Command, error) {
	switch in.Kind {
	case "set-targeting-mode":
		var p struct {
			Mode match.TargetingMode `json:"mode"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.SetTargetingMode{Mode: p.Mode}, nil
	case "update-settings":
		var p struct {
			Settings match.Settings `json:"settings"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.UpdateSettings{Settings: p.Settings}, nil
	case "start-match":
		return match.StartMatch{}, nil
	case "return-to-lobby":
		return match.ReturnToLobby{}, nil
	case "add-bots":
		var p struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.AddBots{Count: p.Count}, nil
	case "send-chat":
		var p struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.SendChat{Text: p.Text}, nil
	case "run-code":
		var p struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.RunCode{Code: p.Code}, nil
	case "submit-code":
		var p struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.SubmitCode{Code: p.Code}, nil
	case "spend-points":
		var p struct {
			Item match.ShopItem `json:"item"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.SpendPoints{Item: p.Item}, nil
	case "spectate-player":
		var p struct {
			PlayerID string `json:"playerId"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.SpectatePlayer{PlayerID: p.PlayerID}, nil
	case "stop-spectate":
		return match.StopSpectate{}, nil
	case "code-update":
		var p struct {
			Code    string `json:"code"`
			Version int    `json:"version"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			return nil, err
		}
		return match.CodeUpdate{Code: p.Code, Version: p.Version}, nil
	default:
		return nil, fmt.Errorf("unknown command kind %q", in.Kind)
	}
}
