package db

import (
	"context"
	"log"
	"time"

	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/google/uuid"
)

// Recorder is a game.Display that writes every finished round of a session
// to the ledger. Other notifications are ignored.
type Recorder struct {
	game.NopDisplay

	db        *Database
	sessionID string
}

func (d *Database) Recorder(sessionID string) *Recorder {
	return &Recorder{db: d, sessionID: sessionID}
}

func (r *Recorder) Outcome(o game.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := r.db.SaveRound(ctx, RoundRecord{
		ID:          uuid.New().String(),
		SessionID:   r.sessionID,
		Round:       o.Round,
		Kind:        o.Kind,
		Reason:      o.Reason,
		PlayerScore: o.PlayerScore,
		DealerScore: o.DealerScore,
		Hits:        o.Hits,
	})
	if err != nil {
		// Log but don't fail the round
		log.Printf("Failed to record round %d of session %s: %v", o.Round, r.sessionID, err)
	}
}
