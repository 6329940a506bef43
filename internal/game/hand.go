package game

import "fmt"

type Owner int

const (
	Player Owner = iota
	Dealer
)

func (o Owner) String() string {
	if o == Dealer {
		return "Dealer"
	}
	return "Player"
}

func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type HandStatus int

const (
	Normal HandStatus = iota
	Blackjack
	Busted
)

func (s HandStatus) String() string {
	switch s {
	case Blackjack:
		return "blackjack"
	case Busted:
		return "busted"
	default:
		return "normal"
	}
}

func (s HandStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Recycler takes back the cards of a hand that is reset.
type Recycler interface {
	Recycle(cards ...Card)
}

// Hand holds the cards of one participant and keeps its score current.
type Hand struct {
	owner   Owner
	cards   []Card
	hasAce  bool
	score   int
	display Display
}

// NewHand creates an empty hand that reports its changes to display
func NewHand(owner Owner, display Display) *Hand {
	if display == nil {
		display = NopDisplay{}
	}
	return &Hand{owner: owner, display: display}
}

// AddCard appends a card and recomputes the score
func (h *Hand) AddCard(card Card) {
	if card.IsAce() {
		h.hasAce = true
	}
	h.cards = append(h.cards, card)
	h.recomputeScore()
	h.notify()
}

// recomputeScore counts every card at its face value and then upgrades a
// single ace to 11 when that does not bust the hand. A second ace is never
// upgraded.
func (h *Hand) recomputeScore() {
	score := 0
	for _, card := range h.cards {
		score += card.Points()
	}
	if h.hasAce && score+10 <= 21 {
		score += 10
	}
	h.score = score
}

// Reset returns the cards to r and empties the hand.
func (h *Hand) Reset(r Recycler) {
	if len(h.cards) > 0 {
		r.Recycle(h.cards...)
	}
	h.cards = nil
	h.hasAce = false
	h.score = 0
	h.notify()
}

func (h *Hand) notify() {
	h.display.HandChanged(h.owner, h.Cards(), h.StatusText())
}

func (h *Hand) Owner() Owner { return h.owner }

func (h *Hand) Score() int { return h.score }

func (h *Hand) HasAce() bool { return h.hasAce }

func (h *Hand) Len() int { return len(h.cards) }

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []Card {
	cards := make([]Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Status classifies the hand. Any 21 counts as Blackjack, not only a
// two-card 21.
func (h *Hand) Status() HandStatus {
	switch {
	case h.score == 21:
		return Blackjack
	case h.score > 21:
		return Busted
	default:
		return Normal
	}
}

func (h *Hand) StatusText() string {
	switch h.Status() {
	case Blackjack:
		return fmt.Sprintf("%s has Blackjack!", h.owner)
	case Busted:
		return fmt.Sprintf("%s is busted!", h.owner)
	default:
		return fmt.Sprintf("%s: %d", h.owner, h.score)
	}
}
