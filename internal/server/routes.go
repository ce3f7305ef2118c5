package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/codeclash-games/codeclash/internal/arena"
	"github.com/codeclash-games/codeclash/internal/arena/match"
	matchDb "github.com/codeclash-games/codeclash/internal/database/match/database"
	"github.com/codeclash-games/codeclash/internal/database/match/model"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/gorilla/mux"
)

type joinBody struct {
	Username string `json:"username"`
}

type createRoomBody struct {
	Username string          `json:"username"`
	Settings *match.Settings `json:"settings,omitempty"`
}

// NewRouter wires the REST surface and the websocket edge onto one mux.
func NewRouter(hub *Hub, manager *arena.Manager, history *matchDb.DB) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/rooms", handleCreateRoom(manager)).Methods(http.MethodPost)
	router.HandleFunc("/api/rooms/{code}", handleRoomSummary(manager)).Methods(http.MethodGet)
	router.HandleFunc("/api/rooms/{code}/join", handleJoinRoom(manager)).Methods(http.MethodPost)
	router.HandleFunc("/api/rooms/{code}/history", handleRoomHistory(history)).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.handleWS(manager)).Methods(http.MethodGet)

	return router
}

func handleCreateRoom(manager *arena.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createRoomBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "malformed body")
			return
		}

		settings := match.DefaultSettings()
		if body.Settings != nil {
			settings = *body.Settings
		}

		session, err := manager.CreateRoom(settings)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := session.Join(body.Username)
		if err != nil {
			writeJoinError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func handleJoinRoom(manager *arena.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := roomFromRequest(w, r, manager)
		if !ok {
			return
		}

		var body joinBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "malformed body")
			return
		}

		res, err := session.Join(body.Username)
		if err != nil {
			writeJoinError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handleRoomSummary(manager *arena.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := roomFromRequest(w, r, manager)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, session.Summary())
	}
}

func handleRoomHistory(history *matchDb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.ParseInt(mux.Vars(r)["code"], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad room code")
			return
		}

		records, err := history.FetchByRoomCode(code)
		if err != nil && !errors.Is(err, matchDb.ErrNotFound) {
			logging.FromContext(r.Context()).Named("server.history").Errorf("fetch %d: %v", code, err)
			writeError(w, http.StatusInternalServerError, "history unavailable")
			return
		}
		if records == nil {
			records = []model.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func roomFromRequest(w http.ResponseWriter, r *http.Request, manager *arena.Manager) (*match.Session, bool) {
	code, err := strconv.ParseInt(mux.Vars(r)["code"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad room code")
		return nil, false
	}
	session, err := manager.Room(code)
	if err != nil {
		writeError(w, http.StatusNotFound, "room not found")
		return nil, false
	}
	return session, true
}

func writeJoinError(w http.ResponseWriter, err error) {
	var rej *match.Rejection
	if errors.As(err, &rej) {
		status := http.StatusBadRequest
		if rej.Code == match.CodeForbidden {
			status = http.StatusForbidden
		}
		writeJSON(w, status, match.ErrorNotice{Code: rej.Code, Reason: rej.Reason})
		return
	}
	writeError(w, http.StatusInternalServerError, "join failed")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}
