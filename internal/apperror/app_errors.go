package apperror

import "errors"

var (
	ErrNotEnoughPlayers = errors.New("not enough players to start the game")
	ErrTooManyPlayers   = errors.New("too many players for a single deck")
	ErrWrongPhase       = errors.New("action is not allowed in the current phase")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrCardNotInHand    = errors.New("card is not in your hand")
	ErrMustFollowSuit   = errors.New("must follow the led suit")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameFull         = errors.New("game is already full")

	// ErrInsufficientCards means the deck ran dry mid-deal. The round
	// sequence guarantees this cannot happen for a supported player count,
	// so hitting it is an internal consistency failure, not a user mistake.
	ErrInsufficientCards = errors.New("not enough cards left in the deck")
)
