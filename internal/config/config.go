package config

import (
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host" env:"UNO_HOST"`
	Port           int    `yaml:"port" env:"UNO_PORT"`
	MaxConnections int    `yaml:"max_connections" env:"UNO_MAX_CONNECTIONS"`
}

// RedisConfig Redis 配置（留空 addr 表示不启用排行榜持久化）
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"UNO_REDIS_ADDR"`
	Password string `yaml:"password" env:"UNO_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"UNO_REDIS_DB"`
}

// GameConfig 游戏配置
type GameConfig struct {
	InitialCards int `yaml:"initial_cards"` // 初始手牌数
	MinPlayers   int `yaml:"min_players"`   // 开局最少人数
	MaxPlayers   int `yaml:"max_players"`   // 大厅人数上限
	LobbyTimeout int `yaml:"lobby_timeout"` // 空大厅回收超时（分钟）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins     []string `yaml:"allowed_origins"`
	ConnPerSecond      int      `yaml:"conn_per_second"`      // 单 IP 每秒连接数
	ConnBanMinutes     int      `yaml:"conn_ban_minutes"`     // 超限封禁时长（分钟）
	MessagesPerSecond  int      `yaml:"messages_per_second"`  // 单客户端每秒消息数
	MaxMessageWarnings int      `yaml:"max_message_warnings"` // 超速警告上限，超过即断开
}

// LobbyTimeoutDuration 返回空大厅回收超时时长
func (c *GameConfig) LobbyTimeoutDuration() time.Duration {
	return time.Duration(c.LobbyTimeout) * time.Minute
}

// ConnBanDuration 返回连接超限封禁时长
func (c *SecurityConfig) ConnBanDuration() time.Duration {
	return time.Duration(c.ConnBanMinutes) * time.Minute
}

// Load 加载配置文件，环境变量可覆盖文件中的值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 环境变量覆盖（部署时无需改动配置文件）
	_ = envdecode.Decode(&cfg)

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	_ = envdecode.Decode(cfg)
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 填充缺省值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 2905
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1024
	}
	if c.Game.InitialCards == 0 {
		c.Game.InitialCards = 7
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = 2
	}
	if c.Game.MaxPlayers == 0 {
		c.Game.MaxPlayers = 10
	}
	if c.Game.LobbyTimeout == 0 {
		c.Game.LobbyTimeout = 10
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	if c.Security.ConnPerSecond == 0 {
		c.Security.ConnPerSecond = 10
	}
	if c.Security.ConnBanMinutes == 0 {
		c.Security.ConnBanMinutes = 5
	}
	if c.Security.MessagesPerSecond == 0 {
		c.Security.MessagesPerSecond = 20
	}
	if c.Security.MaxMessageWarnings == 0 {
		c.Security.MaxMessageWarnings = 5
	}
}
