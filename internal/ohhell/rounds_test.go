package ohhell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

func TestRoundSizes(t *testing.T) {
	t.Run("Rises and falls by one for every supported player count", func(t *testing.T) {
		for playerCount := entity.MinPlayers; playerCount <= entity.MaxPlayers; playerCount++ {
			t.Run(fmt.Sprintf("%d players", playerCount), func(t *testing.T) {
				// When: computing the match progression
				sizes, err := RoundSizes(playerCount)
				require.NoError(t, err)

				// Then: it peaks at the largest hand the deck supports
				// with one card reserved for trump
				maxRound := (entity.DeckSize - 1) / playerCount
				require.Len(t, sizes, 2*maxRound-1)
				assert.Equal(t, 1, sizes[0])
				assert.Equal(t, maxRound, sizes[maxRound-1])
				assert.Equal(t, 1, sizes[len(sizes)-1])

				// Then: neighbours differ by exactly one, up then down
				for i := 1; i < len(sizes); i++ {
					step := sizes[i] - sizes[i-1]
					if i < maxRound {
						assert.Equal(t, 1, step)
					} else {
						assert.Equal(t, -1, step)
					}
				}

				// Then: every round fits in the deck with the trump card
				for _, size := range sizes {
					assert.LessOrEqual(t, size*playerCount+1, entity.DeckSize)
				}
			})
		}
	})

	t.Run("Rejects unsupported player counts", func(t *testing.T) {
		_, err := RoundSizes(1)
		require.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)

		_, err = RoundSizes(entity.MaxPlayers + 1)
		require.ErrorIs(t, err, apperror.ErrTooManyPlayers)
	})
}
