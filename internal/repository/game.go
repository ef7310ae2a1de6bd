package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

// openPublicGameKey points at the one public game currently waiting for
// players, if any.
const openPublicGameKey = "game:public:open"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error

	GetOpenPublicGameID(ctx context.Context) (string, error)
	SetOpenPublicGameID(ctx context.Context, id string) error
	ClearOpenPublicGameID(ctx context.Context) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

// CreateOrUpdate persists the game snapshot. The stored blob is a backup of
// the in-process state, never a second writer.
func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := "game:" + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := "game:" + id

	if err := that.client.Del(ctx, gameKey).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}

func (that *dbGame) GetOpenPublicGameID(ctx context.Context) (string, error) {
	id, err := that.client.Get(ctx, openPublicGameKey).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrGameNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get open public game: %w", err)
	}

	return id, nil
}

func (that *dbGame) SetOpenPublicGameID(ctx context.Context, id string) error {
	if err := that.client.Set(ctx, openPublicGameKey, id, 0).Err(); err != nil {
		return fmt.Errorf("failed to set open public game: %w", err)
	}

	return nil
}

func (that *dbGame) ClearOpenPublicGameID(ctx context.Context) error {
	if err := that.client.Del(ctx, openPublicGameKey).Err(); err != nil {
		return fmt.Errorf("failed to clear open public game: %w", err)
	}

	return nil
}
