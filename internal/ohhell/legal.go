package ohhell

import "github.com/rocketscienceinc/ohhell-backend/internal/entity"

// LegalBids enumerates the bids the player on turn may place, in ascending
// order. It returns nil when it is not that player's turn to bid.
func LegalBids(game *entity.Game, playerID string) []int {
	if !game.IsBidding() || game.CurrentPlayer().ID != playerID {
		return nil
	}

	handSize := game.HandSize()
	hooked := lastToBid(game)
	taken := game.BidsSum()

	var bids []int
	for amount := 0; amount <= handSize; amount++ {
		if hooked && taken+amount == handSize {
			continue
		}
		bids = append(bids, amount)
	}

	return bids
}

// LegalPlays enumerates the cards the player on turn may lay into the
// current trick. It returns nil when it is not that player's turn.
func LegalPlays(game *entity.Game, playerID string) []entity.Card {
	if !game.IsPlaying() || game.CurrentPlayer().ID != playerID {
		return nil
	}

	player := game.CurrentPlayer()

	var cards []entity.Card
	for _, card := range player.Hand {
		if checkFollowSuit(game, player, card) == nil {
			cards = append(cards, card)
		}
	}

	return cards
}
