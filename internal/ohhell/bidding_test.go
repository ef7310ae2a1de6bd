package ohhell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// newBiddingGame builds a game frozen mid-match: three players bidding over
// a hand of five.
func newBiddingGame() *entity.Game {
	game := entity.NewGame("42", entity.PrivateType, entity.DefaultRules())
	game.Players = []*entity.Player{
		{ID: "p1"},
		{ID: "p2"},
		{ID: "p3"},
	}
	game.RoundSizes = []int{5}
	game.Phase = entity.PhaseBidding
	game.TrumpCard = &entity.Card{Suit: entity.SuitDiamonds, Rank: 9}
	return game
}

// snapshotJSON freezes the whole game state for before/after comparison.
func snapshotJSON(t *testing.T, game *entity.Game) string {
	t.Helper()

	raw, err := json.Marshal(game)
	require.NoError(t, err)
	return string(raw)
}

func TestPlaceBid(t *testing.T) {
	t.Run("Bids are taken in seating order", func(t *testing.T) {
		// Given: a fresh bidding phase
		game := newBiddingGame()

		// When: the second player tries to bid first
		err := PlaceBid(game, "p2", 1)

		// Then: the bid is rejected and nothing changed
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Nil(t, game.Players[1].Bid)

		// When: the first player bids
		require.NoError(t, PlaceBid(game, "p1", 1))

		// Then: the turn moves to the second player
		assert.Equal(t, 1, game.CurrentTurn)
	})

	t.Run("Bids outside the hand size are rejected", func(t *testing.T) {
		game := newBiddingGame()

		require.ErrorIs(t, PlaceBid(game, "p1", -1), apperror.ErrInvalidBid)
		require.ErrorIs(t, PlaceBid(game, "p1", 6), apperror.ErrInvalidBid)
		assert.Nil(t, game.Players[0].Bid)
	})

	t.Run("Hook rule blocks the last bidder from an exact total", func(t *testing.T) {
		// Given: the first two players bid a total of three over five tricks
		game := newBiddingGame()
		require.NoError(t, PlaceBid(game, "p1", 1))
		require.NoError(t, PlaceBid(game, "p2", 2))

		// When: the last bidder tries to make the total exactly five
		before := snapshotJSON(t, game)
		err := PlaceBid(game, "p3", 2)

		// Then: the bid is rejected and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidBid)
		require.Equal(t, before, snapshotJSON(t, game))

		// Then: repeating the same rejected bid fails identically
		errAgain := PlaceBid(game, "p3", 2)
		require.ErrorIs(t, errAgain, apperror.ErrInvalidBid)
		require.Equal(t, err.Error(), errAgain.Error())
		require.Equal(t, before, snapshotJSON(t, game))

		// Then: every other amount stays open to the last bidder
		assert.Equal(t, []int{0, 1, 3, 4, 5}, LegalBids(game, "p3"))
	})

	t.Run("Last bid opens play with the round leader on turn", func(t *testing.T) {
		// Given: two of three bids placed
		game := newBiddingGame()
		require.NoError(t, PlaceBid(game, "p1", 1))
		require.NoError(t, PlaceBid(game, "p2", 2))

		// When: the last legal bid lands
		require.NoError(t, PlaceBid(game, "p3", 3))

		// Then: the playing phase starts at the round leader
		assert.Equal(t, entity.PhasePlaying, game.Phase)
		assert.Equal(t, game.TrickLeader, game.CurrentTurn)
	})

	t.Run("Bidding outside the bidding phase is rejected", func(t *testing.T) {
		game := newBiddingGame()
		game.Phase = entity.PhasePlaying

		require.ErrorIs(t, PlaceBid(game, "p1", 0), apperror.ErrWrongPhase)
	})
}

func TestLegalBids(t *testing.T) {
	t.Run("Everything in range before the hook applies", func(t *testing.T) {
		game := newBiddingGame()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, LegalBids(game, "p1"))
	})

	t.Run("Nil when it is not the player's turn", func(t *testing.T) {
		game := newBiddingGame()

		assert.Nil(t, LegalBids(game, "p2"))
	})
}
