package game

// Display renders the game. The engine calls it synchronously on every state
// change; implementations must not call back into the engine.
type Display interface {
	// HandChanged is called whenever a hand's cards or score change
	HandChanged(owner Owner, cards []Card, status string)

	// CardAdded is called once per card dealt to a hand
	CardAdded(owner Owner, card Card)

	// Outcome is called exactly once per completed round
	Outcome(o Outcome)

	// DeckCountChanged reports the size of the draw pile
	DeckCountChanged(remaining int)
}

// ReshuffleObserver is implemented by displays that want to know when an
// exhausted draw pile was refilled from the discard pile mid-round.
type ReshuffleObserver interface {
	DeckReshuffled(remaining int)
}

// NopDisplay ignores every notification.
type NopDisplay struct{}

func (NopDisplay) HandChanged(Owner, []Card, string) {}
func (NopDisplay) CardAdded(Owner, Card)             {}
func (NopDisplay) Outcome(Outcome)                   {}
func (NopDisplay) DeckCountChanged(int)              {}

// Displays fans every notification out to each display in order.
type Displays []Display

func (ds Displays) HandChanged(owner Owner, cards []Card, status string) {
	for _, d := range ds {
		d.HandChanged(owner, cards, status)
	}
}

func (ds Displays) CardAdded(owner Owner, card Card) {
	for _, d := range ds {
		d.CardAdded(owner, card)
	}
}

func (ds Displays) Outcome(o Outcome) {
	for _, d := range ds {
		d.Outcome(o)
	}
}

func (ds Displays) DeckCountChanged(remaining int) {
	for _, d := range ds {
		d.DeckCountChanged(remaining)
	}
}

func (ds Displays) DeckReshuffled(remaining int) {
	for _, d := range ds {
		if o, ok := d.(ReshuffleObserver); ok {
			o.DeckReshuffled(remaining)
		}
	}
}
