package ohhell

import (
	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// PlayCard lays one card into the current trick. When the trick is
// complete its winner is determined, takes the lead, and, once every hand
// is empty, the round is scored and the next one dealt.
func PlayCard(game *entity.Game, playerID string, card entity.Card) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}
	if !game.IsPlaying() {
		return apperror.ErrWrongPhase
	}

	current := game.CurrentPlayer()
	if current.ID != playerID {
		return apperror.ErrNotYourTurn
	}

	if !current.HoldsCard(card) {
		return apperror.ErrCardNotInHand
	}

	if err := checkFollowSuit(game, current, card); err != nil {
		return err
	}

	current.RemoveCard(card)
	game.Trick = append(game.Trick, entity.TrickPlay{PlayerID: playerID, Card: card})

	if len(game.Trick) < len(game.Players) {
		game.AdvanceTurn()
		return nil
	}

	resolveTrick(game)

	if handsEmpty(game) {
		return endRound(game)
	}

	return nil
}

// checkFollowSuit enforces the follow-suit rule: a player holding the led
// suit must play it. Trump is exempt under the default variant, since trump
// never belongs to the led suit.
func checkFollowSuit(game *entity.Game, player *entity.Player, card entity.Card) error {
	led := game.LedSuit()
	if led == nil || card.Suit == *led {
		return nil
	}

	if !player.HasSuit(*led) {
		return nil
	}

	if game.Rules.TrumpAlwaysPlayable {
		if trump := game.TrumpSuit(); trump != nil && card.Suit == *trump {
			return nil
		}
	}

	return apperror.ErrMustFollowSuit
}

// resolveTrick credits the completed trick to its winner, hands them the
// lead for the next one and moves the played cards onto the discard pile.
func resolveTrick(game *entity.Game) {
	winnerID := game.Trick[trickWinner(game.Trick, game.TrumpSuit())].PlayerID

	for seat, player := range game.Players {
		if player.ID == winnerID {
			player.TricksWon++
			game.TrickLeader = seat
			game.CurrentTurn = seat
			break
		}
	}

	for _, play := range game.Trick {
		game.Discard = append(game.Discard, play.Card)
	}
	game.Trick = nil
}

// trickWinner returns the index within the trick of the winning play.
func trickWinner(trick []entity.TrickPlay, trump *entity.Suit) int {
	best := 0
	for i := 1; i < len(trick); i++ {
		if beats(trick[i].Card, trick[best].Card, trick[0].Card.Suit, trump) {
			best = i
		}
	}
	return best
}

// beats reports whether card takes the trick from best: trump beats any
// non-trump, higher rank decides within a suit, and a card of neither trump
// nor the led suit can never win.
func beats(card, best entity.Card, led entity.Suit, trump *entity.Suit) bool {
	if trump != nil {
		if card.Suit == *trump && best.Suit != *trump {
			return true
		}
		if card.Suit != *trump && best.Suit == *trump {
			return false
		}
	}

	if card.Suit == best.Suit {
		return card.Rank > best.Rank
	}

	return card.Suit == led && best.Suit != led
}

func handsEmpty(game *entity.Game) bool {
	for _, player := range game.Players {
		if len(player.Hand) > 0 {
			return false
		}
	}
	return true
}
