package game

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Suit string

const (
	Spades   Suit = "spades"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
)

// Suits lists the suits in the order a fresh deck is built.
var Suits = []Suit{Spades, Diamonds, Hearts, Clubs}

func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var faceNames = map[Rank]string{
	Ace:   "ace",
	Jack:  "jack",
	Queen: "queen",
	King:  "king",
}

// Name returns the lower-case name used in display keys ("ace", "7", "king").
func (r Rank) Name() string {
	if name, ok := faceNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Short returns the one or two character label of the rank ("A", "10", "K").
func (r Rank) Short() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Points returns the blackjack value of the card with aces counted as 1.
func (c Card) Points() int {
	return min(int(c.Rank), 10)
}

func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Key returns the display identity of the card, e.g. "ace_of_spades".
func (c Card) Key() string {
	return fmt.Sprintf("%s_of_%s", c.Rank.Name(), c.Suit)
}

func (c Card) String() string {
	return c.Rank.Short() + c.Suit.Symbol()
}

// MarshalJSON adds the derived key and points so clients never recompute them
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Suit   Suit   `json:"suit"`
		Rank   Rank   `json:"rank"`
		Key    string `json:"key"`
		Points int    `json:"points"`
	}{c.Suit, c.Rank, c.Key(), c.Points()})
}
