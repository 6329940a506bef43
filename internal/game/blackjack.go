package game

import (
	"errors"
	"fmt"
	"log"
)

type State string

const (
	Dealing    State = "dealing"
	PlayerTurn State = "playerTurn"
	DealerTurn State = "dealerTurn"
	RoundOver  State = "roundOver"
)

// DealerStandsOn is the score at which the dealer stops drawing.
const DealerStandsOn = 17

// Engine runs one round of blackjack at a time between the player and the
// dealer. It is not safe for concurrent use.
type Engine struct {
	deck    *Deck
	player  *Hand
	dealer  *Hand
	display Display
	state   State
	outcome *Outcome
	hits    int
	round   int
}

// Snapshot is a read-only view of the engine
type Snapshot struct {
	State         State    `json:"state"`
	Round         int      `json:"round"`
	Hits          int      `json:"hits"`
	Player        HandView `json:"player"`
	Dealer        HandView `json:"dealer"`
	Outcome       *Outcome `json:"outcome,omitempty"`
	DeckRemaining int      `json:"deckRemaining"`
	Discarded     int      `json:"discarded"`
}

type HandView struct {
	Owner  Owner      `json:"owner"`
	Cards  []Card     `json:"cards"`
	Score  int        `json:"score"`
	Status HandStatus `json:"status"`
	Text   string     `json:"text"`
}

// NewEngine creates an engine over deck. No round is live until Start is
// called.
func NewEngine(deck *Deck, display Display) *Engine {
	if display == nil {
		display = NopDisplay{}
	}

	return &Engine{
		deck:    deck,
		player:  NewHand(Player, display),
		dealer:  NewHand(Dealer, display),
		display: display,
		state:   RoundOver,
	}
}

// Start recycles both hands, shuffles the deck and deals two cards to each
// side, player first. A blackjack on the deal ends the round at once.
func (e *Engine) Start() error {
	e.state = Dealing
	e.outcome = nil
	e.hits = 0
	e.round++

	e.player.Reset(e.deck)
	e.dealer.Reset(e.deck)

	e.deck.Shuffle()
	e.display.DeckCountChanged(e.deck.Remaining())

	for i := 0; i < 2; i++ {
		for _, h := range []*Hand{e.player, e.dealer} {
			if err := e.deal(h); err != nil {
				return fmt.Errorf("initial deal: %w", err)
			}
		}
	}

	e.state = PlayerTurn
	e.settle()
	return nil
}

// Hit deals one card to the player
func (e *Engine) Hit() error {
	if err := e.checkPlayerTurn(); err != nil {
		return err
	}

	e.hits++
	if err := e.deal(e.player); err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	e.settle()
	return nil
}

// Stand ends the player's turn and plays the dealer's hand to completion.
// The dealer draws while below DealerStandsOn and behind the player.
func (e *Engine) Stand() error {
	if err := e.checkPlayerTurn(); err != nil {
		return err
	}

	e.state = DealerTurn
	for e.dealer.Score() < DealerStandsOn && e.dealer.Score() < e.player.Score() {
		if err := e.deal(e.dealer); err != nil {
			return fmt.Errorf("dealer hit: %w", err)
		}
		if e.settle() {
			return nil
		}
	}

	switch {
	case e.dealer.Score() > e.player.Score():
		e.finish(ReasonDealerHigher)
	case e.dealer.Score() == e.player.Score():
		e.finish(ReasonTie)
	default:
		e.finish(ReasonPlayerHigher)
	}
	return nil
}

func (e *Engine) checkPlayerTurn() error {
	switch e.state {
	case PlayerTurn:
		return nil
	case RoundOver:
		return ErrRoundOver
	default:
		return ErrNotPlayerTurn
	}
}

// deal draws a card into h, refilling the draw pile from the discard pile
// if it ran out.
func (e *Engine) deal(h *Hand) error {
	card, err := e.deck.Draw()
	if errors.Is(err, ErrEmptyDeck) {
		e.deck.Shuffle()
		log.Printf("Draw pile exhausted, reshuffled %d cards", e.deck.Remaining())
		if o, ok := e.display.(ReshuffleObserver); ok {
			o.DeckReshuffled(e.deck.Remaining())
		}
		card, err = e.deck.Draw()
	}
	if err != nil {
		return err
	}

	h.AddCard(card)
	e.display.CardAdded(h.Owner(), card)
	e.display.DeckCountChanged(e.deck.Remaining())
	return nil
}

// settle ends the round if either hand decides it. Rules are checked in
// order; the first match wins.
func (e *Engine) settle() bool {
	player, dealer := e.player.Status(), e.dealer.Status()

	switch {
	case player == Blackjack && dealer == Blackjack:
		e.finish(ReasonBothBlackjack)
	case dealer == Blackjack:
		e.finish(ReasonDealerBlackjack)
	case player == Blackjack:
		e.finish(ReasonPlayerBlackjack)
	case dealer == Busted:
		e.finish(ReasonDealerBusted)
	case player == Busted:
		e.finish(ReasonPlayerBusted)
	default:
		return false
	}
	return true
}

func (e *Engine) finish(reason Reason) {
	o := newOutcome(reason)
	o.PlayerScore = e.player.Score()
	o.DealerScore = e.dealer.Score()
	o.Hits = e.hits
	o.Round = e.round

	e.state = RoundOver
	e.outcome = &o
	e.display.Outcome(o)
}

func (e *Engine) State() State { return e.state }

// Outcome returns the result of the last finished round, or nil while a
// round is in play.
func (e *Engine) Outcome() *Outcome {
	if e.outcome == nil {
		return nil
	}
	o := *e.outcome
	return &o
}

func (e *Engine) Hits() int { return e.hits }

func (e *Engine) Round() int { return e.round }

func (e *Engine) Player() *Hand { return e.player }

func (e *Engine) Dealer() *Hand { return e.dealer }

func (e *Engine) Deck() *Deck { return e.deck }

// Snapshot returns the current state of the engine
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:         e.state,
		Round:         e.round,
		Hits:          e.hits,
		Player:        viewOf(e.player),
		Dealer:        viewOf(e.dealer),
		Outcome:       e.Outcome(),
		DeckRemaining: e.deck.Remaining(),
		Discarded:     e.deck.Discarded(),
	}
}

func viewOf(h *Hand) HandView {
	return HandView{
		Owner:  h.Owner(),
		Cards:  h.Cards(),
		Score:  h.Score(),
		Status: h.Status(),
		Text:   h.StatusText(),
	}
}
