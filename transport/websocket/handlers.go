package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ohhell-backend/internal/apperror"
	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

const payloadActionGameLeave = "game:leave"

// rejections are the validation failures a client is expected to handle;
// they go back verbatim as error payloads instead of being logged as
// server faults.
var rejections = []error{
	apperror.ErrNotEnoughPlayers,
	apperror.ErrTooManyPlayers,
	apperror.ErrWrongPhase,
	apperror.ErrNotYourTurn,
	apperror.ErrInvalidBid,
	apperror.ErrCardNotInHand,
	apperror.ErrMustFollowSuit,
	apperror.ErrNotHost,
	apperror.ErrGameFinished,
	apperror.ErrGameFull,
}

func isRejection(err error) bool {
	for _, rejection := range rejections {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, bufrw)

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, gameErr := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if gameErr != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", gameErr)
			return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
		}
		payloadResp.Game = game.ViewFor(player.ID)
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	gameType := payloadReq.GameType
	if gameType == "" {
		gameType = entity.PrivateType
	}

	var game *entity.Game
	if gameType == entity.PublicType {
		game, err = that.gameUseCase.CreateOrJoinToPublicGame(ctx, payloadReq.Player.ID)
	} else {
		game, err = that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, gameType)
	}

	if err != nil {
		log.Error("failed to create or join game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player opened game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.GameID == "" {
		log.Error("GameID is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "GameID is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.gameUseCase.JoinGameByID(ctx, payloadReq.GameID, payloadReq.Player.ID)
	if err != nil {
		if isRejection(err) {
			return that.sendErrorResponse(bufrw, msg.Action, err.Error())
		}
		log.Error("failed to join game", "gameID", payloadReq.GameID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to join the game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player joined game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func (that *Server) handleStartGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleStartGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	gameID := payloadReq.GameID
	if gameID == "" {
		game, gameErr := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
		if gameErr != nil {
			log.Error("failed to find game", "error", gameErr)
			return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
		}
		gameID = game.ID
	}

	game, err := that.gameUseCase.StartGame(ctx, gameID, payloadReq.Player.ID)
	if err != nil {
		if isRejection(err) {
			return that.sendErrorResponse(bufrw, msg.Action, err.Error())
		}
		log.Error("failed to start game", "gameID", gameID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to start the game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("game started", "gameID", game.ID)

	return nil
}

func (that *Server) handleBid(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleBid")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Bid == nil {
		log.Error("Bid is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Bid is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.gameUseCase.PlaceBid(ctx, payloadReq.Player.ID, *payloadReq.Bid)
	if err != nil {
		if isRejection(err) {
			return that.sendErrorResponse(bufrw, msg.Action, err.Error())
		}
		log.Error("failed to place bid", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to place the bid")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player placed bid", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func (that *Server) handlePlayCard(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handlePlayCard")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Card == nil {
		log.Error("Card is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Card is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.gameUseCase.PlayCard(ctx, payloadReq.Player.ID, *payloadReq.Card)
	if err != nil {
		if isRejection(err) {
			return that.sendErrorResponse(bufrw, msg.Action, err.Error())
		}
		log.Error("failed to play card", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to play the card")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player played card", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to leave the game")
	}

	that.broadcastGame(payloadActionGameLeave, game)

	log.Info("player left game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}
	return &payload, nil
}
