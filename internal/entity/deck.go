package entity

import (
	"math/rand"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
)

// DeckSize is the size of a full standard deck.
const DeckSize = 52

// Deck is an ordered pile of cards consumed from the front as cards are
// dealt. A fresh deck is built for every round; dealt cards never return.
type Deck struct {
	cards []Card
}

// NewDeck returns a full unshuffled 52-card deck.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := RankTwo; rank <= RankAce; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}

	return &Deck{cards: cards}
}

// Shuffle permutes the deck uniformly with a Fisher-Yates pass.
func (that *Deck) Shuffle() {
	for i := len(that.cards) - 1; i >= 1; i-- {
		j := rand.Intn(i + 1) //nolint: gosec // card shuffling needs no crypto randomness
		that.cards[i], that.cards[j] = that.cards[j], that.cards[i]
	}
}

// Deal removes and returns the first n cards.
func (that *Deck) Deal(n int) ([]Card, error) {
	if n > len(that.cards) {
		return nil, apperror.ErrInsufficientCards
	}

	dealt := make([]Card, n)
	copy(dealt, that.cards[:n])
	that.cards = that.cards[n:]

	return dealt, nil
}

// Remaining reports how many cards are left undealt.
func (that *Deck) Remaining() int {
	return len(that.cards)
}

// Rest removes and returns everything still undealt.
func (that *Deck) Rest() []Card {
	rest := that.cards
	that.cards = nil
	return rest
}
