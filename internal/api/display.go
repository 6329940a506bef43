package api

import "github.com/calvinwijaya/blackjack/internal/game"

// hubDisplay forwards the engine events of one game to its WebSocket
// watchers.
type hubDisplay struct {
	hub    *Hub
	gameID string
}

func (d hubDisplay) HandChanged(owner game.Owner, cards []game.Card, status string) {
	d.hub.BroadcastToGame(d.gameID, Message{
		Type: "handChanged",
		Data: map[string]interface{}{
			"owner":  owner,
			"cards":  cards,
			"status": status,
		},
	})
}

func (d hubDisplay) CardAdded(owner game.Owner, card game.Card) {
	d.hub.BroadcastToGame(d.gameID, Message{
		Type: "cardAdded",
		Data: map[string]interface{}{
			"owner": owner,
			"card":  card,
		},
	})
}

func (d hubDisplay) Outcome(o game.Outcome) {
	d.hub.BroadcastToGame(d.gameID, Message{Type: "outcome", Data: o})
}

func (d hubDisplay) DeckCountChanged(remaining int) {
	d.hub.BroadcastToGame(d.gameID, Message{
		Type: "deckCount",
		Data: map[string]int{"remaining": remaining},
	})
}

func (d hubDisplay) DeckReshuffled(remaining int) {
	d.hub.BroadcastToGame(d.gameID, Message{
		Type: "reshuffled",
		Data: map[string]int{"remaining": remaining},
	})
}
