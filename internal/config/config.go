package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidMaxDepth  = errors.New("engine max-depth must be positive")
	ErrInvalidBoardSize = errors.New("engine board-size must be between 3 and 10")
	ErrInvalidAIPlayer  = errors.New("engine ai-player must be 1 (X) or 2 (O)")
	ErrInvalidAILevel   = errors.New("engine ai-level must be 0 or 1")
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Engine     Engine `yaml:"engine"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Engine struct {
	MaxDepth     int           `yaml:"max-depth" env:"ENGINE_MAX_DEPTH" env-default:"4"`
	BoardSize    int           `yaml:"board-size" env:"ENGINE_BOARD_SIZE" env-default:"3"`
	AIPlayer     int           `yaml:"ai-player" env:"ENGINE_AI_PLAYER" env-default:"2"`
	AILevel      int           `yaml:"ai-level" env:"ENGINE_AI_LEVEL" env-default:"1"`
	MoveCacheTTL time.Duration `yaml:"move-cache-ttl" env:"ENGINE_MOVE_CACHE_TTL" env-default:"10m"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"ENGINE_GAME_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Engine.Validate(); err != nil {
		panic(fmt.Errorf("invalid engine config: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Validate - checks engine settings against the board and search limits.
func (that *Engine) Validate() error {
	switch {
	case that.MaxDepth < 1:
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, that.MaxDepth)
	case that.BoardSize < 3 || that.BoardSize > 10:
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, that.BoardSize)
	case that.AIPlayer != 1 && that.AIPlayer != 2:
		return fmt.Errorf("%w: %d", ErrInvalidAIPlayer, that.AIPlayer)
	case that.AILevel != 0 && that.AILevel != 1:
		return fmt.Errorf("%w: %d", ErrInvalidAILevel, that.AILevel)
	default:
		return nil
	}
}
