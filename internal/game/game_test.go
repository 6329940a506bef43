package game

// recorder captures every display notification for assertions.
type recorder struct {
	status     map[Owner]string
	added      map[Owner][]Card
	outcomes   []Outcome
	deckCounts []int
	reshuffles int
}

func newRecorder() *recorder {
	return &recorder{
		status: make(map[Owner]string),
		added:  make(map[Owner][]Card),
	}
}

func (r *recorder) HandChanged(owner Owner, _ []Card, status string) {
	r.status[owner] = status
}

func (r *recorder) CardAdded(owner Owner, card Card) {
	r.added[owner] = append(r.added[owner], card)
}

func (r *recorder) Outcome(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) DeckCountChanged(remaining int) {
	r.deckCounts = append(r.deckCounts, remaining)
}

func (r *recorder) DeckReshuffled(int) {
	r.reshuffles++
}

// stacked returns a shuffle that puts top first, in order, and leaves the
// rest of the pile in its current order.
func stacked(top ...Card) ShuffleFunc {
	return func(cards []Card) {
		present := make(map[Card]bool, len(cards))
		for _, c := range cards {
			present[c] = true
		}

		// cards held in a hand are not in the pile and cannot be stacked
		ordered := make([]Card, 0, len(cards))
		want := make(map[Card]bool, len(top))
		for _, c := range top {
			if present[c] {
				ordered = append(ordered, c)
				want[c] = true
			}
		}
		for _, c := range cards {
			if !want[c] {
				ordered = append(ordered, c)
			}
		}
		copy(cards, ordered)
	}
}

func card(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}
