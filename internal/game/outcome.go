package game

type OutcomeKind string

const (
	PlayerWins OutcomeKind = "playerWins"
	DealerWins OutcomeKind = "dealerWins"
	Push       OutcomeKind = "push"
)

// Reason records which rule decided a round.
type Reason string

const (
	ReasonBothBlackjack   Reason = "bothBlackjack"
	ReasonDealerBlackjack Reason = "dealerBlackjack"
	ReasonPlayerBlackjack Reason = "playerBlackjack"
	ReasonDealerBusted    Reason = "dealerBusted"
	ReasonPlayerBusted    Reason = "playerBusted"
	ReasonDealerHigher    Reason = "dealerHigher"
	ReasonPlayerHigher    Reason = "playerHigher"
	ReasonTie             Reason = "tie"
)

// Outcome is the result of a finished round.
type Outcome struct {
	Kind        OutcomeKind `json:"kind"`
	Reason      Reason      `json:"reason"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	PlayerScore int         `json:"playerScore"`
	DealerScore int         `json:"dealerScore"`
	Hits        int         `json:"hits"`
	Round       int         `json:"round"`
}

var outcomeText = map[Reason]struct {
	kind    OutcomeKind
	title   string
	message string
}{
	ReasonBothBlackjack:   {Push, "Tie", "It's a tie!"},
	ReasonDealerBlackjack: {DealerWins, "Dealer is winning", "Dealer has Blackjack!"},
	ReasonPlayerBlackjack: {PlayerWins, "Player is winning", "You got Blackjack, congratulations!"},
	ReasonDealerBusted:    {PlayerWins, "Dealer busted", "You win! Dealer got busted!"},
	ReasonPlayerBusted:    {DealerWins, "BUSTED", "You lose, got busted!"},
	ReasonDealerHigher:    {DealerWins, "You lose", "Dealer is winning!"},
	ReasonTie:             {Push, "Push!", "It's a tie!"},
	ReasonPlayerHigher:    {PlayerWins, "Congratulations!", "You are winning, good work!"},
}

func newOutcome(reason Reason) Outcome {
	text := outcomeText[reason]
	return Outcome{
		Kind:    text.kind,
		Reason:  reason,
		Title:   text.title,
		Message: text.message,
	}
}
