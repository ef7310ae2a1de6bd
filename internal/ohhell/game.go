// Package ohhell implements the rules of the game: round sequencing,
// dealing, bidding with the hook constraint, trick resolution and scoring.
// It is the sole mutator of entity.Game; every operation either fully
// applies or rejects without touching the state.
package ohhell

import (
	"fmt"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// Join seats a player in a game that has not started yet.
func Join(game *entity.Game, player *entity.Player) error {
	if !game.IsLobby() {
		return apperror.ErrWrongPhase
	}
	if len(game.Players) >= entity.MaxPlayers {
		return apperror.ErrGameFull
	}

	game.Players = append(game.Players, player)

	return nil
}

// Start moves the game out of the lobby and deals the first round. The
// seating order at this moment stays fixed for the whole match.
func Start(game *entity.Game) error {
	if !game.IsLobby() {
		return apperror.ErrWrongPhase
	}

	sizes, err := RoundSizes(len(game.Players))
	if err != nil {
		return err
	}

	game.RoundSizes = sizes
	game.RoundIndex = 0
	game.TrickLeader = 0
	game.Phase = entity.PhaseDealing

	return beginRound(game)
}

// beginRound deals the current round from a fresh shuffled deck: one hand
// per player in seating order, then the trump card. It is shared by the
// initial start and every round advance. The trick leader set by the
// previous round opens the bidding.
func beginRound(game *entity.Game) error {
	handSize := game.HandSize()

	deck := entity.NewDeck()
	deck.Shuffle()

	for _, player := range game.Players {
		player.ResetRound()
	}
	game.Trick = nil
	game.Discard = nil

	for _, player := range game.Players {
		hand, err := deck.Deal(handSize)
		if err != nil {
			return fmt.Errorf("dealing hand of %d: %w", handSize, err)
		}
		player.Hand = hand
	}

	trump, err := deck.Deal(1)
	if err != nil {
		return fmt.Errorf("dealing trump card: %w", err)
	}
	game.TrumpCard = &trump[0]
	game.Stock = deck.Rest()

	game.CurrentTurn = game.TrickLeader
	game.Phase = entity.PhaseBidding

	return nil
}

// endRound scores the finished round and either deals the next one or ends
// the match when the round sequence is exhausted.
func endRound(game *entity.Game) error {
	game.Phase = entity.PhaseRoundEnd
	scoreRound(game)

	if game.LastRound() {
		finishGame(game)
		return nil
	}

	game.RoundIndex++
	game.Phase = entity.PhaseDealing

	return beginRound(game)
}

func finishGame(game *entity.Game) {
	game.Phase = entity.PhaseGameEnd
	game.TrumpCard = nil
	game.Stock = nil
	game.Trick = nil
	game.Discard = nil

	// Highest score wins; on a tie the earliest seat keeps it.
	winner := game.Players[0]
	for _, player := range game.Players[1:] {
		if player.Score > winner.Score {
			winner = player
		}
	}
	game.Winner = winner.ID
}
