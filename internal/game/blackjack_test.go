package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStackedEngine deals the given cards first. The initial deal order is
// player, dealer, player, dealer.
func newStackedEngine(t *testing.T, top ...Card) (*Engine, *recorder) {
	t.Helper()

	rec := newRecorder()
	e := NewEngine(NewDeck(WithShuffle(stacked(top...))), rec)
	require.NoError(t, e.Start())
	return e, rec
}

func cardsInPlay(e *Engine) int {
	return e.deck.Remaining() + e.deck.Discarded() + e.player.Len() + e.dealer.Len()
}

func TestEngine_NoRoundBeforeStart(t *testing.T) {
	e := NewEngine(NewDeck(), nil)

	assert.Equal(t, RoundOver, e.State())
	assert.Nil(t, e.Outcome())
	assert.ErrorIs(t, e.Hit(), ErrRoundOver)
	assert.ErrorIs(t, e.Stand(), ErrRoundOver)
}

func TestEngine_StartDealsAlternately(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Two, Spades), card(Three, Spades), card(Four, Spades), card(Five, Spades))

	assert.Equal(t, PlayerTurn, e.State())
	assert.Equal(t, []Card{card(Two, Spades), card(Four, Spades)}, e.Player().Cards())
	assert.Equal(t, []Card{card(Three, Spades), card(Five, Spades)}, e.Dealer().Cards())
	assert.Equal(t, 48, e.Deck().Remaining())
	assert.Equal(t, 1, e.Round())
	assert.Equal(t, "Player: 6", rec.status[Player])
	assert.Equal(t, "Dealer: 8", rec.status[Dealer])
	assert.Equal(t, 48, rec.deckCounts[len(rec.deckCounts)-1])
	assert.Empty(t, rec.outcomes)
}

func TestEngine_PlayerBlackjackOnDeal(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Ace, Spades), card(Five, Hearts), card(King, Clubs), card(Nine, Diamonds))

	assert.Equal(t, RoundOver, e.State())
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, PlayerWins, rec.outcomes[0].Kind)
	assert.Equal(t, ReasonPlayerBlackjack, rec.outcomes[0].Reason)
	assert.Len(t, e.Dealer().Cards(), 2, "dealer never plays")
	assert.ErrorIs(t, e.Hit(), ErrRoundOver)
	assert.ErrorIs(t, e.Stand(), ErrRoundOver)
	assert.Len(t, rec.outcomes, 1)
}

func TestEngine_BothBlackjackIsPush(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Ace, Spades), card(Ace, Hearts), card(King, Clubs), card(Queen, Diamonds))

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, Push, e.Outcome().Kind)
	assert.Equal(t, ReasonBothBlackjack, e.Outcome().Reason)
}

func TestEngine_DealerBlackjackOnDeal(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Ten, Spades), card(Ace, Hearts), card(Nine, Clubs), card(King, Diamonds))

	assert.Equal(t, DealerWins, e.Outcome().Kind)
	assert.Equal(t, ReasonDealerBlackjack, e.Outcome().Reason)
}

func TestEngine_StandDealerDrawsPastPlayer(t *testing.T) {
	// player 18, dealer 16 draws a 3 for 19
	e, rec := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Eight, Clubs), card(Six, Diamonds),
		card(Three, Spades))

	require.NoError(t, e.Stand())

	assert.Equal(t, RoundOver, e.State())
	assert.Equal(t, 19, e.Dealer().Score())
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, DealerWins, rec.outcomes[0].Kind)
	assert.Equal(t, ReasonDealerHigher, rec.outcomes[0].Reason)
	assert.Equal(t, 18, rec.outcomes[0].PlayerScore)
	assert.Equal(t, 19, rec.outcomes[0].DealerScore)
}

func TestEngine_DealerKeepsHitting(t *testing.T) {
	// player 18, dealer 12 needs three more cards: 14, 16, 19
	e, rec := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Eight, Clubs), card(Two, Diamonds),
		card(Two, Spades), card(Two, Clubs), card(Three, Hearts))

	require.NoError(t, e.Stand())

	assert.Len(t, rec.added[Dealer], 5)
	assert.Equal(t, 19, e.Dealer().Score())
	assert.Equal(t, DealerWins, e.Outcome().Kind)
}

func TestEngine_DealerStandsOnSeventeen(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Eight, Clubs), card(Seven, Diamonds))

	require.NoError(t, e.Stand())

	assert.Len(t, e.Dealer().Cards(), 2)
	assert.Equal(t, PlayerWins, e.Outcome().Kind)
	assert.Equal(t, ReasonPlayerHigher, e.Outcome().Reason)
}

func TestEngine_DealerStopsWhenLevel(t *testing.T) {
	// dealer 15 is not behind a player 15, so it stands and pushes
	e, _ := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Five, Clubs), card(Five, Diamonds))

	require.NoError(t, e.Stand())

	assert.Len(t, e.Dealer().Cards(), 2)
	assert.Equal(t, Push, e.Outcome().Kind)
	assert.Equal(t, ReasonTie, e.Outcome().Reason)
}

func TestEngine_DealerBusts(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Eight, Clubs), card(Six, Diamonds),
		card(King, Spades))

	require.NoError(t, e.Stand())

	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, PlayerWins, rec.outcomes[0].Kind)
	assert.Equal(t, ReasonDealerBusted, rec.outcomes[0].Reason)
	assert.Equal(t, "Dealer is busted!", rec.status[Dealer])
}

func TestEngine_DealerReachesTwentyOne(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Nine, Clubs), card(Six, Diamonds),
		card(Five, Spades))

	require.NoError(t, e.Stand())

	assert.Equal(t, DealerWins, e.Outcome().Kind)
	assert.Equal(t, ReasonDealerBlackjack, e.Outcome().Reason)
}

func TestEngine_PlayerBusts(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Six, Clubs), card(Seven, Diamonds),
		card(King, Spades))

	require.NoError(t, e.Hit())

	assert.Equal(t, RoundOver, e.State())
	assert.Equal(t, 1, e.Hits())
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, DealerWins, rec.outcomes[0].Kind)
	assert.Equal(t, ReasonPlayerBusted, rec.outcomes[0].Reason)
	assert.Equal(t, 1, rec.outcomes[0].Hits)

	assert.ErrorIs(t, e.Hit(), ErrRoundOver)
	assert.ErrorIs(t, e.Stand(), ErrRoundOver)
	assert.Len(t, rec.outcomes, 1)
}

func TestEngine_PlayerHitsToTwentyOne(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Five, Spades), card(Ten, Hearts), card(Six, Clubs), card(Seven, Diamonds),
		card(King, Spades))

	require.NoError(t, e.Hit())

	assert.Equal(t, 21, e.Player().Score())
	assert.Equal(t, PlayerWins, e.Outcome().Kind)
	assert.Equal(t, ReasonPlayerBlackjack, e.Outcome().Reason)
}

func TestEngine_HitKeepsPlayerTurn(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Two, Spades), card(Ten, Hearts), card(Three, Clubs), card(Seven, Diamonds),
		card(Four, Spades))

	require.NoError(t, e.Hit())

	assert.Equal(t, PlayerTurn, e.State())
	assert.Equal(t, 9, e.Player().Score())
	assert.Nil(t, e.Outcome())
	assert.Equal(t, []Card{card(Two, Spades), card(Three, Clubs), card(Four, Spades)}, rec.added[Player])
}

func TestEngine_StartRecyclesHands(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Ten, Spades), card(Ten, Hearts), card(Six, Clubs), card(Seven, Diamonds),
		card(King, Spades))
	require.NoError(t, e.Hit())
	require.Equal(t, RoundOver, e.State())

	require.NoError(t, e.Start())

	assert.Equal(t, PlayerTurn, e.State())
	assert.Nil(t, e.Outcome())
	assert.Equal(t, 0, e.Hits())
	assert.Equal(t, 2, e.Round())
	assert.Equal(t, 0, e.Deck().Discarded())
	assert.Equal(t, 52, cardsInPlay(e))
}

func TestEngine_ReshufflesWhenDrawPileRunsOut(t *testing.T) {
	e, rec := newStackedEngine(t,
		card(Two, Spades), card(Ten, Hearts), card(Three, Clubs), card(Seven, Diamonds))

	for e.deck.Remaining() > 0 {
		c, err := e.deck.Draw()
		require.NoError(t, err)
		e.deck.Recycle(c)
	}

	require.NoError(t, e.Hit())

	assert.Equal(t, 1, rec.reshuffles)
	assert.Equal(t, 3, e.Player().Len())
	assert.Equal(t, 47, e.Deck().Remaining())
	assert.Equal(t, 52, cardsInPlay(e))
}

func TestEngine_CardConservation(t *testing.T) {
	e := NewEngine(NewDeck(WithSeed(99)), nil)

	for round := 0; round < 200; round++ {
		require.NoError(t, e.Start())
		assert.Equal(t, 52, cardsInPlay(e))

		for i := 0; e.State() == PlayerTurn; i++ {
			if e.Player().Score() < 15 {
				require.NoError(t, e.Hit())
			} else {
				require.NoError(t, e.Stand())
			}
			assert.Equal(t, 52, cardsInPlay(e))
		}

		require.NotNil(t, e.Outcome())
		assert.Equal(t, round+1, e.Outcome().Round)
		assert.LessOrEqual(t, e.Player().Score(), 32)
		assert.LessOrEqual(t, e.Dealer().Score(), 32)
	}
}

func TestEngine_DealerLoopTerminates(t *testing.T) {
	e := NewEngine(NewDeck(WithSeed(5)), nil)

	for round := 0; round < 200; round++ {
		require.NoError(t, e.Start())
		if e.State() != PlayerTurn {
			continue
		}
		require.NoError(t, e.Stand())

		assert.Equal(t, RoundOver, e.State())
		d, p := e.Dealer().Score(), e.Player().Score()
		assert.True(t, d >= DealerStandsOn || d >= p,
			"dealer stopped at %d against %d", d, p)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	e, _ := newStackedEngine(t,
		card(Ace, Spades), card(Five, Hearts), card(Nine, Clubs), card(Nine, Diamonds))

	s := e.Snapshot()

	assert.Equal(t, PlayerTurn, s.State)
	assert.Equal(t, 20, s.Player.Score)
	assert.Equal(t, Normal, s.Player.Status)
	assert.Equal(t, "Dealer: 14", s.Dealer.Text)
	assert.Equal(t, 48, s.DeckRemaining)
	assert.Nil(t, s.Outcome)
}
