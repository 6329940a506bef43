package game

import "errors"

var (
	// ErrEmptyDeck is returned by Deck.Draw when the draw pile is exhausted.
	ErrEmptyDeck = errors.New("draw pile is empty")

	// ErrRoundOver is returned for hit or stand once the round has been decided.
	ErrRoundOver = errors.New("round is over")

	ErrNotPlayerTurn = errors.New("not the player's turn")
)
