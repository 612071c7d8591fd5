package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key
const (
	playerStatsKey = "uno:player:stats:"
	leaderboardKey = "uno:leaderboard:wins"
)

// PlayerStats 玩家跨局统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场
	PenaltySum int `json:"penalty_sum"` // 累计罚分（Uno 计分中越低越好）

	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames)
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int
	PlayerID   string
	PlayerName string
	Wins       int
	WinRate    float64
}

// LeaderboardManager 排行榜管理器。
// redis 客户端可为 nil：此时所有操作都是无害的空操作，游戏不依赖持久化
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// RecordRound 记录一局结果：胜负计数、罚分累计、胜场榜更新
func (lm *LeaderboardManager) RecordRound(ctx context.Context, playerID, playerName string, penalty int, won bool) error {
	if lm.redis == nil {
		return nil
	}

	stats, err := lm.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	stats.PlayerName = playerName
	stats.TotalGames++
	stats.PenaltySum += penalty
	stats.LastPlayedAt = time.Now().Unix()
	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}

	if err := lm.saveStats(ctx, stats); err != nil {
		return err
	}

	if won {
		return lm.redis.ZIncrBy(ctx, leaderboardKey, 1, playerID).Err()
	}
	return nil
}

// GetPlayerStats 获取玩家统计，没有记录时返回 nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	if lm.redis == nil {
		return nil, nil
	}

	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetPlayerRank 获取玩家在胜场榜上的名次（从 1 开始），未上榜返回 0
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	if lm.redis == nil {
		return 0, nil
	}

	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return rank + 1, nil
}

// GetLeaderboard 获取胜场榜前 limit 名
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if lm.redis == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	ids, err := lm.redis.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(ids))
	for i, id := range ids {
		entry := LeaderboardEntry{Rank: i + 1, PlayerID: id}
		if stats, err := lm.GetPlayerStats(ctx, id); err == nil && stats != nil {
			entry.PlayerName = stats.PlayerName
			entry.Wins = stats.Wins
			entry.WinRate = stats.WinRate()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// getOrCreateStats 获取或创建玩家统计
func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  time.Now().Unix(),
		}
	}
	return stats, nil
}

// saveStats 保存玩家统计
func (lm *LeaderboardManager) saveStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}
