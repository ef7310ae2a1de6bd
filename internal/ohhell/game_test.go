package ohhell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

func newLobbyGame(playerIDs ...string) *entity.Game {
	game := entity.NewGame("42", entity.PrivateType, entity.DefaultRules())
	for _, id := range playerIDs {
		game.Players = append(game.Players, &entity.Player{ID: id})
	}
	return game
}

// requireAccounted checks that all 52 cards sit in hands, the trick, the
// discard pile, the stock or the trump slot.
func requireAccounted(t *testing.T, game *entity.Game) {
	t.Helper()

	total := len(game.Trick) + len(game.Discard) + len(game.Stock)
	for _, player := range game.Players {
		total += len(player.Hand)
	}
	if game.TrumpCard != nil {
		total++
	}

	require.Equal(t, entity.DeckSize, total)
}

func TestJoin(t *testing.T) {
	t.Run("Seats players while in the lobby", func(t *testing.T) {
		game := newLobbyGame("p1")

		err := Join(game, &entity.Player{ID: "p2"})

		require.NoError(t, err)
		assert.Len(t, game.Players, 2)
	})

	t.Run("Rejects joining a started game", func(t *testing.T) {
		game := newLobbyGame("p1", "p2", "p3")
		require.NoError(t, Start(game))

		err := Join(game, &entity.Player{ID: "p4"})

		require.ErrorIs(t, err, apperror.ErrWrongPhase)
	})

	t.Run("Rejects joining a full table", func(t *testing.T) {
		game := newLobbyGame("p1", "p2", "p3", "p4", "p5", "p6", "p7")

		err := Join(game, &entity.Player{ID: "p8"})

		require.ErrorIs(t, err, apperror.ErrGameFull)
	})
}

func TestStart(t *testing.T) {
	t.Run("Start deals round one", func(t *testing.T) {
		// Given: a four-player lobby
		game := newLobbyGame("p1", "p2", "p3", "p4")

		// When: the game starts
		require.NoError(t, Start(game))

		// Then: bidding opens on a one-card hand with a trump up
		assert.Equal(t, entity.PhaseBidding, game.Phase)
		assert.Equal(t, 0, game.RoundIndex)
		assert.Equal(t, 1, game.HandSize())
		require.NotNil(t, game.TrumpCard)
		for _, player := range game.Players {
			assert.Len(t, player.Hand, 1)
			assert.Nil(t, player.Bid)
			assert.Zero(t, player.TricksWon)
		}
		requireAccounted(t, game)
	})

	t.Run("Start rejects too few players", func(t *testing.T) {
		game := newLobbyGame("p1")

		require.ErrorIs(t, Start(game), apperror.ErrNotEnoughPlayers)
		assert.Equal(t, entity.PhaseLobby, game.Phase)
	})

	t.Run("Start rejects a running game", func(t *testing.T) {
		game := newLobbyGame("p1", "p2", "p3")
		require.NoError(t, Start(game))

		require.ErrorIs(t, Start(game), apperror.ErrWrongPhase)
	})
}

// TestFullFirstRound drives four players through the whole first round:
// everyone bids zero, each plays their only card, the trick resolves, the
// round is scored and round two is dealt.
func TestFullFirstRound(t *testing.T) {
	// Given: a started four-player game
	game := newLobbyGame("p1", "p2", "p3", "p4")
	require.NoError(t, Start(game))

	// When: everyone bids zero (legal even for the last bidder, whose
	// forbidden amount is one)
	for range game.Players {
		current := game.CurrentPlayer()
		require.NoError(t, PlaceBid(game, current.ID, 0))
	}

	// Then: play opens with the round leader
	require.Equal(t, entity.PhasePlaying, game.Phase)
	require.Equal(t, game.TrickLeader, game.CurrentTurn)

	// When: each player lays down their only card
	for range game.Players {
		current := game.CurrentPlayer()
		require.NoError(t, PlayCard(game, current.ID, current.Hand[0]))
		requireAccounted(t, game)
	}

	// Then: round two is already dealt, two cards per hand
	assert.Equal(t, 1, game.RoundIndex)
	assert.Equal(t, entity.PhaseBidding, game.Phase)
	assert.Equal(t, 2, game.HandSize())
	for _, player := range game.Players {
		assert.Len(t, player.Hand, 2)
		assert.Nil(t, player.Bid)
		assert.Zero(t, player.TricksWon)
	}
	requireAccounted(t, game)

	// Then: exactly one player took the trick and missed their zero bid;
	// the rest hit it
	missed := 0
	for _, player := range game.Players {
		switch player.Score {
		case -2:
			missed++
		case 10:
		default:
			t.Fatalf("unexpected score %d", player.Score)
		}
	}
	assert.Equal(t, 1, missed)
}

// TestCardAccountingAcrossTricks verifies that resolved tricks land on the
// discard pile: the 52 cards stay split across hands, trick, discard, stock
// and trump after every single play of a multi-trick round.
func TestCardAccountingAcrossTricks(t *testing.T) {
	// Given: three players in a three-card round
	game := newLobbyGame("p1", "p2", "p3")
	require.NoError(t, Start(game))
	game.RoundSizes = []int{3, 1}
	require.NoError(t, beginRound(game))
	requireAccounted(t, game)

	for range game.Players {
		require.NoError(t, PlaceBid(game, game.CurrentPlayer().ID, 0))
		requireAccounted(t, game)
	}

	// When: the three tricks play out
	for trick := 1; trick <= 3; trick++ {
		for range game.Players {
			current := game.CurrentPlayer()
			plays := LegalPlays(game, current.ID)
			require.NotEmpty(t, plays)
			require.NoError(t, PlayCard(game, current.ID, plays[0]))
			requireAccounted(t, game)
		}

		// Then: the resolved trick sits on the discard pile
		if trick < 3 {
			assert.Len(t, game.Discard, 3*trick)
			assert.Empty(t, game.Trick)
		}
	}

	// Then: the next round starts from a clean pile
	require.Equal(t, entity.PhaseBidding, game.Phase)
	require.Equal(t, 1, game.RoundIndex)
	assert.Empty(t, game.Discard)
}

// TestFullMatch plays a two-player single-round setup to the terminal
// phase by trimming the round sequence to one round.
func TestFullMatch(t *testing.T) {
	// Given: a started three-player game cut down to its final round
	game := newLobbyGame("p1", "p2", "p3")
	require.NoError(t, Start(game))
	game.RoundSizes = []int{1}

	// When: the round plays out
	for range game.Players {
		require.NoError(t, PlaceBid(game, game.CurrentPlayer().ID, 0))
	}
	for range game.Players {
		current := game.CurrentPlayer()
		require.NoError(t, PlayCard(game, current.ID, current.Hand[0]))
	}

	// Then: the match is over with a winner declared
	require.Equal(t, entity.PhaseGameEnd, game.Phase)
	require.NotEmpty(t, game.Winner)
	winner := game.PlayerByID(game.Winner)
	require.NotNil(t, winner)
	for _, player := range game.Players {
		assert.LessOrEqual(t, player.Score, winner.Score)
	}

	// Then: phase-specific actions are rejected once the game ended
	require.ErrorIs(t, PlaceBid(game, "p1", 0), apperror.ErrGameFinished)
	require.ErrorIs(t, PlayCard(game, "p1", entity.Card{Suit: entity.SuitSpades, Rank: 2}), apperror.ErrGameFinished)
}
