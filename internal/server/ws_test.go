package server

import (
	"encoding/json"
	"testing"

	"github.com/codeclash-games/codeclash/internal/arena/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, kind string, payload interface{}) wireIn {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return wireIn{Kind: kind, Payload: raw}
}

func TestDecodeCommand(t *testing.T) {
	t.Run("decodes every wire kind", func(t *testing.T) {
		cases := []struct {
			in   wireIn
			want match.Command
		}{
			{frame(t, "set-targeting-mode", map[string]string{"mode": "topScore"}), match.SetTargetingMode{Mode: match.TargetTopScore}},
			{frame(t, "start-match", nil), match.StartMatch{}},
			{frame(t, "return-to-lobby", nil), match.ReturnToLobby{}},
			{frame(t, "add-bots", map[string]int{"count": 3}), match.AddBots{Count: 3}},
			{frame(t, "send-chat", map[string]string{"text": "hi"}), match.SendChat{Text: "hi"}},
			{frame(t, "run-code", map[string]string{"code": "print(1)"}), match.RunCode{Code: "print(1)"}},
			{frame(t, "submit-code", map[string]string{"code": "print(2)"}), match.SubmitCode{Code: "print(2)"}},
			{frame(t, "spend-points", map[string]string{"item": "hint"}), match.SpendPoints{Item: match.ItemHint}},
			{frame(t, "spectate-player", map[string]string{"playerId": "p-1"}), match.SpectatePlayer{PlayerID: "p-1"}},
			{frame(t, "stop-spectate", nil), match.StopSpectate{}},
			{frame(t, "code-update", map[string]interface{}{"code": "x", "version": 7}), match.CodeUpdate{Code: "x", Version: 7}},
		}

		for _, tc := range cases {
			cmd, err := decodeCommand(tc.in)
			require.NoError(t, err, tc.in.Kind)
			assert.Equal(t, tc.want, cmd, tc.in.Kind)
		}
	})

	t.Run("decodes settings updates", func(t *testing.T) {
		settings := match.DefaultSettings()
		cmd, err := decodeCommand(frame(t, "update-settings", map[string]interface{}{"settings": settings}))
		require.NoError(t, err)
		assert.Equal(t, match.UpdateSettings{Settings: settings}, cmd)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := decodeCommand(wireIn{Kind: "format-disk"})
		assert.Error(t, err)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		_, err := decodeCommand(wireIn{Kind: "add-bots", Payload: json.RawMessage(`{"count": "three"}`)})
		assert.Error(t, err)
	})
}

func TestHubSend(t *testing.T) {
	t.Run("unknown connections are dropped silently", func(t *testing.T) {
		h := NewHub()
		h.Send("nobody", match.MatchPhaseChanged{Phase: match.PhaseMain})
	})

	t.Run("queued frames carry the kind envelope", func(t *testing.T) {
		h := NewHub()
		c := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		id := h.register(c)

		h.Send(id, match.MatchPhaseChanged{Phase: match.PhaseMain})

		raw := <-c.send
		var out struct {
			Kind    string          `json:"kind"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "match-phase-changed", out.Kind)
	})

	t.Run("a full send buffer drops the frame instead of blocking", func(t *testing.T) {
		h := NewHub()
		c := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		id := h.register(c)

		h.Send(id, match.MatchPhaseChanged{Phase: match.PhaseMain})
		h.Send(id, match.MatchPhaseChanged{Phase: match.PhaseEnded})

		assert.Len(t, c.send, 1)
	})
}
