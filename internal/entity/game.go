package entity

const (
	PhaseLobby    = "lobby"
	PhaseDealing  = "dealing"
	PhaseBidding  = "bidding"
	PhasePlaying  = "playing"
	PhaseRoundEnd = "round_end"
	PhaseGameEnd  = "game_end"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

const (
	MinPlayers = 2
	MaxPlayers = 7
)

// Rules carries the variant knobs of a match. Scoring constants and the
// trump-follow exception differ between house variants, so they are loaded
// from configuration instead of being baked into the engine.
type Rules struct {
	ExactBidBonus       int  `json:"exact_bid_bonus"`
	ExactBidPerTrick    int  `json:"exact_bid_per_trick"`
	MissPenaltyPerTrick int  `json:"miss_penalty_per_trick"`
	TrumpAlwaysPlayable bool `json:"trump_always_playable"`
}

func DefaultRules() Rules {
	return Rules{
		ExactBidBonus:       10,
		ExactBidPerTrick:    2,
		MissPenaltyPerTrick: 2,
		TrumpAlwaysPlayable: true,
	}
}

// TrickPlay is one card laid into the current trick, in play order.
type TrickPlay struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// Game is the aggregate root of one running match. Exactly one instance
// exists per game; the ohhell package is its sole mutator and the persisted
// copy is only ever a snapshot of it.
type Game struct {
	ID      string    `json:"id"`
	Type    string    `json:"type,omitempty"`
	HostID  string    `json:"host_id,omitempty"`
	Phase   string    `json:"phase"`
	Players []*Player `json:"players,omitempty"`
	Rules   Rules     `json:"rules"`

	// RoundSizes is the fixed hand-size progression of the whole match,
	// indexed by RoundIndex.
	RoundSizes []int `json:"round_sizes,omitempty"`
	RoundIndex int   `json:"round_index"`

	CurrentTurn int         `json:"current_turn"`
	TrickLeader int         `json:"trick_leader"`
	TrumpCard   *Card       `json:"trump_card,omitempty"`
	Trick       []TrickPlay `json:"trick,omitempty"`

	// Discard collects the cards of the round's resolved tricks, so a card
	// leaving a hand always lands in the trick or here.
	Discard []Card `json:"discard,omitempty"`

	// Stock holds the undealt remainder of the round's deck. It is never
	// played from, only kept so every one of the 52 cards stays accounted for.
	Stock []Card `json:"stock,omitempty"`

	Winner string `json:"winner,omitempty"`
}

func NewGame(id, gameType string, rules Rules) *Game {
	return &Game{
		ID:    id,
		Type:  gameType,
		Phase: PhaseLobby,
		Rules: rules,
	}
}

func (that *Game) IsLobby() bool    { return that.Phase == PhaseLobby }
func (that *Game) IsBidding() bool  { return that.Phase == PhaseBidding }
func (that *Game) IsPlaying() bool  { return that.Phase == PhasePlaying }
func (that *Game) IsFinished() bool { return that.Phase == PhaseGameEnd }

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// HandSize is the number of tricks in the current round.
func (that *Game) HandSize() int {
	return that.RoundSizes[that.RoundIndex]
}

// LastRound reports whether the current round is the final one.
func (that *Game) LastRound() bool {
	return that.RoundIndex == len(that.RoundSizes)-1
}

// CurrentPlayer returns the player expected to act, or nil outside the
// bidding and playing phases.
func (that *Game) CurrentPlayer() *Player {
	if !that.IsBidding() && !that.IsPlaying() {
		return nil
	}
	return that.Players[that.CurrentTurn]
}

func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

// TrumpSuit returns the round's trump suit, or nil before dealing.
func (that *Game) TrumpSuit() *Suit {
	if that.TrumpCard == nil {
		return nil
	}
	return &that.TrumpCard.Suit
}

// LedSuit returns the suit of the first card in the current trick, or nil
// when the trick is empty.
func (that *Game) LedSuit() *Suit {
	if len(that.Trick) == 0 {
		return nil
	}
	return &that.Trick[0].Card.Suit
}

// AllBidsIn reports whether every player has bid this round.
func (that *Game) AllBidsIn() bool {
	for _, player := range that.Players {
		if player.Bid == nil {
			return false
		}
	}
	return true
}

// BidsSum is the total of the bids placed so far.
func (that *Game) BidsSum() int {
	sum := 0
	for _, player := range that.Players {
		if player.Bid != nil {
			sum += *player.Bid
		}
	}
	return sum
}

// AdvanceTurn moves the turn pointer to the next seat, wrapping around.
func (that *Game) AdvanceTurn() {
	that.CurrentTurn = (that.CurrentTurn + 1) % len(that.Players)
}
