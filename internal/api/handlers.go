package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/calvinwijaya/blackjack/internal/db"
	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/calvinwijaya/blackjack/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handlers contains all the API handlers
type Handlers struct {
	store    store.Store
	database *db.Database
	hub      *Hub
	deckOpts []game.DeckOption
}

// NewHandlers creates a new instance of Handlers. database and hub are
// optional; deckOpts are applied to the deck of every new game.
func NewHandlers(store store.Store, database *db.Database, hub *Hub, deckOpts ...game.DeckOption) *Handlers {
	return &Handlers{
		store:    store,
		database: database,
		hub:      hub,
		deckOpts: deckOpts,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Game endpoints
	r.HandleFunc("/api/game/new", h.NewGame).Methods("POST")
	r.HandleFunc("/api/game/{id}/hit", h.Hit).Methods("POST")
	r.HandleFunc("/api/game/{id}/stand", h.Stand).Methods("POST")
	r.HandleFunc("/api/game/{id}/shuffle", h.Shuffle).Methods("POST")
	r.HandleFunc("/api/game/{id}/history", h.GetHistory).Methods("GET")
	r.HandleFunc("/api/game/{id}", h.GetGame).Methods("GET")
	r.HandleFunc("/api/game/{id}", h.DeleteGame).Methods("DELETE")
	r.HandleFunc("/api/games", h.ListGames).Methods("GET")

	r.HandleFunc("/api/stats", h.GetStats).Methods("GET")

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.WebSocketHandler)
	}
}

type gameResponse struct {
	ID string `json:"id"`
	game.Snapshot
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// newSession wires the displays of a session: WebSocket watchers and the
// round ledger, when available
func (h *Handlers) newSession(id string) *store.Session {
	var displays game.Displays
	if h.hub != nil {
		displays = append(displays, hubDisplay{hub: h.hub, gameID: id})
	}
	if h.database != nil {
		displays = append(displays, h.database.Recorder(id))
	}
	return store.NewSession(id, displays, h.deckOpts...)
}

// NewGame creates a session and deals its first round
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	sess := h.newSession(uuid.New().String())

	if err := sess.Do(func(e *game.Engine) error { return e.Start() }); err != nil {
		log.Printf("Failed to deal game %s: %v", sess.ID, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to deal game")
		return
	}

	if err := h.store.SaveSession(sess); err != nil {
		log.Printf("Failed to save game %s: %v", sess.ID, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to save game")
		return
	}

	response(w, http.StatusCreated, gameResponse{ID: sess.ID, Snapshot: sess.Snapshot()})
}

// Hit deals the player another card
func (h *Handlers) Hit(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*game.Engine).Hit)
}

// Stand ends the player's turn and plays out the dealer
func (h *Handlers) Stand(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*game.Engine).Stand)
}

// Shuffle recycles both hands, shuffles and deals a new round
func (h *Handlers) Shuffle(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, (*game.Engine).Start)
}

func (h *Handlers) act(w http.ResponseWriter, r *http.Request, action func(*game.Engine) error) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	err := sess.Do(action)
	switch {
	case errors.Is(err, game.ErrRoundOver):
		errorResponse(w, http.StatusConflict, "Round is over, shuffle to play again")
		return
	case errors.Is(err, game.ErrNotPlayerTurn):
		errorResponse(w, http.StatusConflict, "Not the player's turn")
		return
	case err != nil:
		log.Printf("Game %s action failed: %v", sess.ID, err)
		errorResponse(w, http.StatusInternalServerError, "Action failed")
		return
	}

	snapshot := sess.Snapshot()

	// Broadcast the settled state to all watchers
	if h.hub != nil {
		h.hub.BroadcastToGame(sess.ID, Message{Type: "gameUpdate", Data: snapshot})
	}

	response(w, http.StatusOK, gameResponse{ID: sess.ID, Snapshot: snapshot})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	gameID := mux.Vars(r)["id"]

	sess, err := h.store.GetSession(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	return sess, true
}

// GetGame returns the current state of a game
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	response(w, http.StatusOK, gameResponse{ID: sess.ID, Snapshot: sess.Snapshot()})
}

// DeleteGame removes a game
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := h.store.DeleteSession(gameID); err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	response(w, http.StatusOK, map[string]string{
		"success": "true",
		"message": "Game deleted",
	})
}

// ListGames returns a summary of every live game
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.GetAllSessions()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving games")
		return
	}

	games := make([]map[string]interface{}, 0, len(sessions))
	for _, sess := range sessions {
		snapshot := sess.Snapshot()
		entry := map[string]interface{}{
			"id":          sess.ID,
			"state":       snapshot.State,
			"round":       snapshot.Round,
			"createdAt":   sess.CreatedAt.Format(time.RFC3339),
			"lastUpdated": sess.UpdatedAt().Format(time.RFC3339),
		}
		if h.hub != nil {
			entry["watchers"] = h.hub.Watchers(sess.ID)
		}
		games = append(games, entry)
	}

	response(w, http.StatusOK, games)
}

// GetHistory returns the finished rounds of a game from the ledger
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}

	gameID := mux.Vars(r)["id"]
	rounds, err := h.database.GetSessionRounds(r.Context(), gameID)
	if err != nil {
		log.Printf("Error retrieving history of game %s: %v", gameID, err)
		errorResponse(w, http.StatusInternalServerError, "Error retrieving history")
		return
	}

	response(w, http.StatusOK, rounds)
}

// GetStats returns outcome statistics, for one game when ?gameId= is set
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}

	stats, err := h.database.GetStats(r.Context(), r.URL.Query().Get("gameId"))
	if err != nil {
		log.Printf("Error retrieving stats: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Error retrieving statistics")
		return
	}

	response(w, http.StatusOK, map[string]interface{}{
		"stats":   stats,
		"winRate": stats.WinRate(),
	})
}
