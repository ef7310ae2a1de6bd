package entity

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Bot    bool   `json:"bot,omitempty"`

	// Score persists across rounds; the remaining fields reset every round.
	Score     int    `json:"score"`
	Hand      []Card `json:"hand,omitempty"`
	Bid       *int   `json:"bid,omitempty"`
	TricksWon int    `json:"tricks_won"`
}

func (that *Player) IsBot() bool {
	return that.Bot
}

// HasSuit reports whether the player still holds a card of the given suit.
func (that *Player) HasSuit(suit Suit) bool {
	for _, card := range that.Hand {
		if card.Suit == suit {
			return true
		}
	}
	return false
}

// HoldsCard reports whether the card is present in the player's hand.
func (that *Player) HoldsCard(card Card) bool {
	for _, held := range that.Hand {
		if held == card {
			return true
		}
	}
	return false
}

// RemoveCard takes one copy of the card out of the hand. It reports false
// if the player does not hold it, leaving the hand untouched.
func (that *Player) RemoveCard(card Card) bool {
	for i, held := range that.Hand {
		if held == card {
			that.Hand = append(that.Hand[:i], that.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// ResetRound clears the per-round fields, keeping the running score.
func (that *Player) ResetRound() {
	that.Hand = nil
	that.Bid = nil
	that.TricksWon = 0
}
