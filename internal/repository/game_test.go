package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
	"github.com/rocketscienceinc/ohhell-backend/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game waiting in the lobby
	game := entity.NewGame("123", entity.PrivateType, entity.DefaultRules())

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game with a seated player and a trump card
		game := entity.NewGame("123", entity.PublicType, entity.DefaultRules())
		game.Phase = entity.PhaseBidding
		game.RoundSizes = []int{1, 2, 1}
		game.TrumpCard = &entity.Card{Suit: entity.SuitHearts, Rank: entity.RankQueen}
		game.Players = []*entity.Player{
			{ID: "p1", Hand: []entity.Card{{Suit: entity.SuitSpades, Rank: 2}}},
		}

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the snapshot round-trips intact
		require.NoError(t, err)
		require.Equal(t, game.ID, retrievedGame.ID)
		require.Equal(t, game.Phase, retrievedGame.Phase)
		require.Equal(t, game.RoundSizes, retrievedGame.RoundSizes)
		require.Equal(t, game.TrumpCard, retrievedGame.TrumpCard)
		require.Len(t, retrievedGame.Players, 1)
		assert.Equal(t, game.Players[0].Hand, retrievedGame.Players[0].Hand)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrGameNotFound, err)
		assert.Empty(t, retrievedGame.ID)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a stored game
	game := entity.NewGame("123", entity.PrivateType, entity.DefaultRules())
	err := gameRepo.CreateOrUpdate(ctx, game)
	require.NoError(t, err)

	// When: DeleteByID is called with existing ID
	err = gameRepo.DeleteByID(ctx, game.ID)

	// Then: the game is gone
	require.NoError(t, err)

	_, err = gameRepo.GetByID(ctx, game.ID)
	require.Error(t, err)
	assert.Equal(t, ErrGameNotFound, err)
}

func TestGameRepository_OpenPublicGame(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: no public game is waiting
	_, err := gameRepo.GetOpenPublicGameID(ctx)
	require.Equal(t, ErrGameNotFound, err)

	// When: a game is marked as the open public one
	err = gameRepo.SetOpenPublicGameID(ctx, "123")
	require.NoError(t, err)

	// Then: it can be looked up
	openID, err := gameRepo.GetOpenPublicGameID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "123", openID)

	// When: the slot is cleared
	err = gameRepo.ClearOpenPublicGameID(ctx)
	require.NoError(t, err)

	// Then: the lookup misses again
	_, err = gameRepo.GetOpenPublicGameID(ctx)
	require.Equal(t, ErrGameNotFound, err)
}
