package entity

// GameView is the per-player snapshot of a game. It carries the public
// state plus exactly one hand: the viewer's own. Other hands are reduced to
// card counts, and bid amounts stay hidden until every bid is in.
type GameView struct {
	ID          string       `json:"id"`
	Phase       string       `json:"phase"`
	HostID      string       `json:"host_id,omitempty"`
	RoundIndex  int          `json:"round_index"`
	TotalRounds int          `json:"total_rounds"`
	HandSize    int          `json:"hand_size,omitempty"`
	TrumpCard   *Card        `json:"trump_card,omitempty"`
	Trick       []TrickPlay  `json:"trick,omitempty"`
	Discard     []Card       `json:"discard,omitempty"`
	CurrentTurn string       `json:"current_turn,omitempty"`
	TrickLeader string       `json:"trick_leader,omitempty"`
	Players     []PlayerView `json:"players"`
	Hand        []Card       `json:"hand,omitempty"`
	Winner      string       `json:"winner,omitempty"`
}

type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Bot       bool   `json:"bot,omitempty"`
	Score     int    `json:"score"`
	CardsLeft int    `json:"cards_left"`
	TricksWon int    `json:"tricks_won"`
	HasBid    bool   `json:"has_bid"`
	Bid       *int   `json:"bid,omitempty"`
}

// ViewFor renders the game as seen by one player. Rendering mutates
// nothing, so calling it repeatedly without an intervening action yields
// identical views.
func (that *Game) ViewFor(playerID string) *GameView {
	view := &GameView{
		ID:          that.ID,
		Phase:       that.Phase,
		HostID:      that.HostID,
		RoundIndex:  that.RoundIndex,
		TotalRounds: len(that.RoundSizes),
		Trick:       append([]TrickPlay(nil), that.Trick...),
		Discard:     append([]Card(nil), that.Discard...),
		TrumpCard:   that.TrumpCard,
		Winner:      that.Winner,
	}

	if len(that.RoundSizes) > 0 {
		view.HandSize = that.HandSize()
	}

	if current := that.CurrentPlayer(); current != nil {
		view.CurrentTurn = current.ID
	}

	if that.IsBidding() || that.IsPlaying() {
		view.TrickLeader = that.Players[that.TrickLeader].ID
	}

	bidsPublic := that.AllBidsIn()
	for _, player := range that.Players {
		playerView := PlayerView{
			ID:        player.ID,
			Name:      player.Name,
			Bot:       player.Bot,
			Score:     player.Score,
			CardsLeft: len(player.Hand),
			TricksWon: player.TricksWon,
			HasBid:    player.Bid != nil,
		}

		// Bid amounts become public only once bidding is closed.
		if bidsPublic {
			playerView.Bid = player.Bid
		}

		view.Players = append(view.Players, playerView)

		if player.ID == playerID {
			view.Hand = append([]Card(nil), player.Hand...)
		}
	}

	return view
}
