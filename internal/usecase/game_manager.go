package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
	"github.com/rocketscienceinc/ohhell-backend/internal/ohhell"
	"github.com/rocketscienceinc/ohhell-backend/internal/pkg"
	"github.com/rocketscienceinc/ohhell-backend/internal/repository"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error

	GetOpenPublicGameID(ctx context.Context) (string, error)
	SetOpenPublicGameID(ctx context.Context, id string) error
	ClearOpenPublicGameID(ctx context.Context) error
}

// GameManager owns the live games. Every action on a game runs under that
// game's lock, so load, validate, mutate and persist are never interleaved
// between two callers. The redis blob is only a snapshot of what happened
// here.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	rules        entity.Rules
	botOpponents int

	locksMutex sync.Mutex
	gameLocks  map[string]*sync.Mutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, rules entity.Rules, botOpponents int) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		rules:        rules,
		botOpponents: botOpponents,

		gameLocks: make(map[string]*sync.Mutex),
	}
}

// lockGame serializes all actions targeting one game.
func (that *GameManager) lockGame(gameID string) func() {
	that.locksMutex.Lock()
	lock, ok := that.gameLocks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		that.gameLocks[gameID] = lock
	}
	that.locksMutex.Unlock()

	lock.Lock()
	return lock.Unlock
}

// releaseGameLock drops the lock entry of a game that no longer exists.
// A caller still blocked on the old mutex fails on load afterwards, since
// the blob is already gone.
func (that *GameManager) releaseGameLock(gameID string) {
	that.locksMutex.Lock()
	delete(that.gameLocks, gameID)
	that.locksMutex.Unlock()
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the game the player is already in, or opens a new
// lobby with the player as host. A bot game is seated with bot opponents
// right away.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		return that.getGameByID(ctx, player.GameID)
	}

	return that.createGame(ctx, player, gameType)
}

// CreateOrJoinToPublicGame seats the player in the public game currently
// waiting for players, or opens a fresh one and marks it as waiting.
func (that *GameManager) CreateOrJoinToPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	openID, err := that.gameRepo.GetOpenPublicGameID(ctx)
	if err == nil {
		game, joinErr := that.JoinGameByID(ctx, openID, playerID)
		if joinErr == nil {
			return game, nil
		}
		// The waiting game filled up or started; fall through and open
		// a new one.
	}

	game, err := that.GetOrCreateGame(ctx, playerID, entity.PublicType)
	if err != nil {
		return nil, err
	}

	if err = that.gameRepo.SetOpenPublicGameID(ctx, game.ID); err != nil {
		return nil, fmt.Errorf("failed to mark public game as open: %w", err)
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID(), gameType, that.rules)
	game.HostID = player.ID

	player.GameID = game.ID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	game.Players = []*entity.Player{player}

	if game.IsWithBot() {
		that.seatBots(game)
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// seatBots fills the lobby with bot opponents; the host plus the bots form
// the whole table.
func (that *GameManager) seatBots(game *entity.Game) {
	seats := that.botOpponents
	if len(game.Players)+seats > entity.MaxPlayers {
		seats = entity.MaxPlayers - len(game.Players)
	}

	for i := 0; i < seats; i++ {
		bot := &entity.Player{
			ID:     fmt.Sprintf("bot:%s:%d", game.ID, i+1),
			Name:   fmt.Sprintf("Bot %d", i+1),
			Bot:    true,
			GameID: game.ID,
		}
		game.Players = append(game.Players, bot)
	}
}

func (that *GameManager) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if err = ohhell.Join(game, player); err != nil {
		return nil, fmt.Errorf("failed to join game %s: %w", gameID, err)
	}

	player.GameID = game.ID
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// StartGame deals the first round. Only the host may trigger it.
func (that *GameManager) StartGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.HostID != playerID {
		return nil, apperror.ErrNotHost
	}

	if err = ohhell.Start(game); err != nil {
		return game, err
	}

	if game.IsPublic() {
		if openID, openErr := that.gameRepo.GetOpenPublicGameID(ctx); openErr == nil && openID == game.ID {
			if err = that.gameRepo.ClearOpenPublicGameID(ctx); err != nil {
				return nil, err
			}
		}
	}

	that.playBotTurns(game)

	return game, that.finishAction(ctx, game)
}

// PlaceBid applies one bid on behalf of the player and then lets any bots
// on turn act.
func (that *GameManager) PlaceBid(ctx context.Context, playerID string, amount int) (*entity.Game, error) {
	game, unlock, err := that.loadOwnGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err = ohhell.PlaceBid(game, playerID, amount); err != nil {
		return game, err
	}

	that.playBotTurns(game)

	return game, that.finishAction(ctx, game)
}

// PlayCard applies one card play on behalf of the player and then lets any
// bots on turn act.
func (that *GameManager) PlayCard(ctx context.Context, playerID string, card entity.Card) (*entity.Game, error) {
	game, unlock, err := that.loadOwnGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err = ohhell.PlayCard(game, playerID, card); err != nil {
		return game, err
	}

	that.playBotTurns(game)

	return game, that.finishAction(ctx, game)
}

// loadOwnGame resolves the player's current game and takes its lock.
func (that *GameManager) loadOwnGame(ctx context.Context, playerID string) (*entity.Game, func(), error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if player.GameID == "" {
		return nil, nil, repository.ErrGameNotFound
	}

	unlock := that.lockGame(player.GameID)

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		unlock()
		return nil, nil, err
	}

	return game, unlock, nil
}

// playBotTurns lets every bot on turn act: the lowest legal bid while
// bidding, the first legal card while playing. The round sequence is
// finite, so this always terminates.
func (that *GameManager) playBotTurns(game *entity.Game) {
	log := that.logger.With("method", "playBotTurns", "gameID", game.ID)

	for {
		current := game.CurrentPlayer()
		if current == nil || !current.IsBot() {
			return
		}

		var err error
		switch {
		case game.IsBidding():
			bids := ohhell.LegalBids(game, current.ID)
			err = ohhell.PlaceBid(game, current.ID, bids[0])
		case game.IsPlaying():
			plays := ohhell.LegalPlays(game, current.ID)
			err = ohhell.PlayCard(game, current.ID, plays[0])
		default:
			return
		}

		if err != nil {
			log.Error("bot failed to act", "playerID", current.ID, "error", err)
			return
		}
	}
}

// finishAction persists the game after a successful action, or tears it
// down when the match just ended.
func (that *GameManager) finishAction(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		that.cleanupGame(ctx, game)
		return nil
	}

	return that.updateGame(ctx, game)
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, repository.ErrGameNotFound
	}

	return that.getGameByID(ctx, player.GameID)
}

// EndGame abandons the game and detaches its players.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	unlock := that.lockGame(game.ID)
	defer unlock()

	game.Phase = entity.PhaseGameEnd
	that.cleanupGame(ctx, game)

	return nil
}

// cleanupGame drops the persisted blob and frees the players for a new
// game. Failures here only get logged: the in-memory result was already
// produced.
func (that *GameManager) cleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	if game.IsPublic() {
		if openID, err := that.gameRepo.GetOpenPublicGameID(ctx); err == nil && openID == game.ID {
			if err = that.gameRepo.ClearOpenPublicGameID(ctx); err != nil {
				log.Error("failed to clear open public game", "error", err)
			}
		}
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		detached := &entity.Player{ID: player.ID, Name: player.Name}
		if err := that.playerRepo.CreateOrUpdate(ctx, detached); err != nil {
			log.Error("failed to update player", "playerID", player.ID, "error", err)
		}
	}

	that.releaseGameLock(game.ID)

	log.Info("game deleted")
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
