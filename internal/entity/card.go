package entity

import "fmt"

type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

// Suits lists every suit in deck-building order.
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Rank is the strength of a card within its suit: 2 is the lowest,
// ace (14) the highest. The numeric value doubles as the total order.
type Rank int

const (
	RankTwo   Rank = 2
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

func (that Rank) String() string {
	switch that {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	default:
		return fmt.Sprintf("%d", int(that))
	}
}

// Card is an immutable value: two cards are equal when suit and rank match.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (that Card) String() string {
	return fmt.Sprintf("%s of %s", that.Rank, that.Suit)
}
