package ohhell

import "github.com/rocketscienceinc/ohhell-backend/internal/entity"

// scoreRound converts each player's (bid, tricks won) pair into a score
// delta. Hitting the bid exactly earns the configured base bonus plus a
// per-trick bonus; missing it costs the penalty for every trick of the miss.
func scoreRound(game *entity.Game) {
	rules := game.Rules

	for _, player := range game.Players {
		bid := 0
		if player.Bid != nil {
			bid = *player.Bid
		}

		if bid == player.TricksWon {
			player.Score += rules.ExactBidBonus + rules.ExactBidPerTrick*bid
			continue
		}

		miss := bid - player.TricksWon
		if miss < 0 {
			miss = -miss
		}
		player.Score -= rules.MissPenaltyPerTrick * miss
	}
}
