package ohhell

import (
	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// RoundSizes computes the fixed hand-size progression of a whole match:
// 1 up to the largest hand the deck supports, then back down to 1. One card
// stays reserved for trump every round, so the largest hand is
// (52-1)/playerCount rounded down.
func RoundSizes(playerCount int) ([]int, error) {
	if playerCount < entity.MinPlayers {
		return nil, apperror.ErrNotEnoughPlayers
	}
	if playerCount > entity.MaxPlayers {
		return nil, apperror.ErrTooManyPlayers
	}

	maxRound := (entity.DeckSize - 1) / playerCount

	sizes := make([]int, 0, 2*maxRound-1)
	for size := 1; size <= maxRound; size++ {
		sizes = append(sizes, size)
	}
	for size := maxRound - 1; size >= 1; size-- {
		sizes = append(sizes, size)
	}

	return sizes, nil
}
