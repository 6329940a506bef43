package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// ShuffleFunc permutes cards in place.
type ShuffleFunc func(cards []Card)

type Deck struct {
	drawPile    []Card
	discardPile []Card
	shuffle     ShuffleFunc
}

// DeckOption configures a Deck created by NewDeck
type DeckOption func(*Deck)

// WithSeed shuffles with a math/rand source seeded by seed, making the
// card order reproducible.
func WithSeed(seed int64) DeckOption {
	return func(d *Deck) {
		d.shuffle = fisherYates(rand.New(rand.NewSource(seed)))
	}
}

// WithShuffle replaces the shuffle algorithm.
func WithShuffle(fn ShuffleFunc) DeckOption {
	return func(d *Deck) {
		d.shuffle = fn
	}
}

// NewDeck creates a standard 52-card deck. The draw pile is left in suit
// then rank order; call Shuffle before dealing.
func NewDeck(opts ...DeckOption) *Deck {
	deck := &Deck{
		drawPile: make([]Card, 0, len(Suits)*int(King)),
	}

	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			deck.drawPile = append(deck.drawPile, Card{Suit: suit, Rank: rank})
		}
	}

	for _, opt := range opts {
		opt(deck)
	}
	if deck.shuffle == nil {
		deck.shuffle = fisherYates(rand.New(rand.NewSource(newSeed())))
	}

	return deck
}

// Shuffle returns the discard pile to the draw pile and randomizes its order
func (d *Deck) Shuffle() {
	d.drawPile = append(d.drawPile, d.discardPile...)
	d.discardPile = nil
	d.shuffle(d.drawPile)
}

// Draw removes and returns the top card of the draw pile. The card is in
// play until a hand recycles it.
func (d *Deck) Draw() (Card, error) {
	if len(d.drawPile) == 0 {
		return Card{}, ErrEmptyDeck
	}

	card := d.drawPile[0]
	d.drawPile = d.drawPile[1:]
	return card, nil
}

// Recycle puts cards on the discard pile.
func (d *Deck) Recycle(cards ...Card) {
	d.discardPile = append(d.discardPile, cards...)
}

// Remaining returns the number of cards left in the draw pile
func (d *Deck) Remaining() int {
	return len(d.drawPile)
}

// Discarded returns the number of cards on the discard pile
func (d *Deck) Discarded() int {
	return len(d.discardPile)
}

func fisherYates(r *rand.Rand) ShuffleFunc {
	return func(cards []Card) {
		for i := len(cards) - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			cards[i], cards[j] = cards[j], cards[i]
		}
	}
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
