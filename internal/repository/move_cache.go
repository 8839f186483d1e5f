package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrMoveNotCached = errors.New("move is not cached")

type MoveCache interface {
	Get(ctx context.Context, board *entity.Board, player entity.Cell, depth int) (tictactoe.Result, error)
	Set(ctx context.Context, board *entity.Board, player entity.Cell, depth int, result tictactoe.Result) error
}

type cachedMove struct {
	Move  entity.Move `json:"move"`
	Score string      `json:"score"`
}

type dbMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveCache - caches search results by board fingerprint, side to move and depth.
func NewMoveCache(client *redis.Client, ttl time.Duration) MoveCache {
	return &dbMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func moveKey(board *entity.Board, player entity.Cell, depth int) string {
	return fmt.Sprintf("move:%d:%d:%d:%s", board.Size(), player, depth, board.Key())
}

func (that *dbMoveCache) Get(ctx context.Context, board *entity.Board, player entity.Cell, depth int) (tictactoe.Result, error) {
	response, err := that.client.Get(ctx, moveKey(board, player, depth)).Result()
	if errors.Is(err, redis.Nil) {
		return tictactoe.Result{Move: entity.NoMove}, ErrMoveNotCached
	}

	if err != nil {
		return tictactoe.Result{Move: entity.NoMove}, fmt.Errorf("failed to get cached move: %w", err)
	}

	var cached cachedMove
	if err = json.Unmarshal([]byte(response), &cached); err != nil {
		return tictactoe.Result{Move: entity.NoMove}, fmt.Errorf("failed to unmarshal cached move: %w", err)
	}

	score, err := tictactoe.ParseScore(cached.Score)
	if err != nil {
		return tictactoe.Result{Move: entity.NoMove}, fmt.Errorf("failed to parse cached score: %w", err)
	}

	return tictactoe.Result{Move: cached.Move, Score: score}, nil
}

func (that *dbMoveCache) Set(ctx context.Context, board *entity.Board, player entity.Cell, depth int, result tictactoe.Result) error {
	cachedJSON, err := json.Marshal(cachedMove{
		Move:  result.Move,
		Score: tictactoe.FormatScore(result.Score),
	})
	if err != nil {
		return fmt.Errorf("could not marshal cached move: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(board, player, depth), cachedJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached move: %w", err)
	}

	return nil
}
