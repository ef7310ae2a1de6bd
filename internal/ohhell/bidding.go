package ohhell

import (
	"fmt"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// PlaceBid records one player's bid for the current round. Bids are taken
// in seating order starting from the round leader; when the last bid lands,
// play opens with the leader on turn.
func PlaceBid(game *entity.Game, playerID string, amount int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}
	if !game.IsBidding() {
		return apperror.ErrWrongPhase
	}

	current := game.CurrentPlayer()
	if current.ID != playerID {
		return apperror.ErrNotYourTurn
	}

	handSize := game.HandSize()
	if amount < 0 || amount > handSize {
		return fmt.Errorf("%w: %d is outside 0..%d", apperror.ErrInvalidBid, amount, handSize)
	}

	// Hook rule: the final bidder may not bring the total to exactly the
	// number of tricks on the table, so at least one bid always fails.
	if lastToBid(game) && game.BidsSum()+amount == handSize {
		return fmt.Errorf("%w: bids may not add up to %d", apperror.ErrInvalidBid, handSize)
	}

	bid := amount
	current.Bid = &bid

	if game.AllBidsIn() {
		game.Phase = entity.PhasePlaying
		game.CurrentTurn = game.TrickLeader
		return nil
	}
	game.AdvanceTurn()

	return nil
}

// lastToBid reports whether the player on turn is the only one left to bid.
func lastToBid(game *entity.Game) bool {
	unbid := 0
	for _, player := range game.Players {
		if player.Bid == nil {
			unbid++
		}
	}
	return unbid == 1
}
