package cache

import (
	"context"
	"fmt"
	"strconv"
	"wellcheck/internal/model"
	"wellcheck/internal/scoring"

	"github.com/redis/go-redis/v9"
)

// ScoreBoard keeps every submitted overall score in a Redis ZSET
type ScoreBoard interface {
	Record(ctx context.Context, sessionID string, overall float64) error
	Top(ctx context.Context, limit int) ([]ScoreEntry, error)
	Stats(ctx context.Context) (*model.TierStats, error)
}

// ScoreEntry is a single ranked overall score
type ScoreEntry struct {
	SessionID string  `json:"sessionId"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
}

type scoreBoard struct {
	client *redis.Client
	key    string
}

// NewScoreBoard creates a score board for the given catalog
func NewScoreBoard(client *redis.Client, catalogName string) ScoreBoard {
	return &scoreBoard{
		client: client,
		key:    fmt.Sprintf("catalog:%s:overall", catalogName),
	}
}

func (c *scoreBoard) Record(ctx context.Context, sessionID string, overall float64) error {
	return c.client.ZAdd(ctx, c.key, redis.Z{
		Score:  overall,
		Member: sessionID,
	}).Err()
}

func (c *scoreBoard) Top(ctx context.Context, limit int) ([]ScoreEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreEntry{
			SessionID: z.Member.(string),
			Score:     z.Score,
			Rank:      i + 1,
		}
	}
	return entries, nil
}

// Tier bounds as ZCOUNT arguments; "(" makes a bound exclusive so a score
// equal to a threshold lands in the higher tier
var (
	mediumBound = strconv.FormatFloat(scoring.MediumThreshold, 'g', -1, 64)
	highBound   = strconv.FormatFloat(scoring.HighThreshold, 'g', -1, 64)
)

// Stats counts scores per tier
func (c *scoreBoard) Stats(ctx context.Context) (*model.TierStats, error) {
	pipe := c.client.Pipeline()
	low := pipe.ZCount(ctx, c.key, "-inf", "("+mediumBound)
	medium := pipe.ZCount(ctx, c.key, mediumBound, "("+highBound)
	high := pipe.ZCount(ctx, c.key, highBound, "+inf")
	total := pipe.ZCard(ctx, c.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &model.TierStats{
		Total:  total.Val(),
		Low:    low.Val(),
		Medium: medium.Val(),
		High:   high.Val(),
	}, nil
}
