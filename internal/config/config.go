package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Game holds the house-variant knobs: the scoring constants and whether
// trump may be played while still holding the led suit.
type Game struct {
	ExactBidBonus       int  `yaml:"exact-bid-bonus" env-default:"10"`
	ExactBidPerTrick    int  `yaml:"exact-bid-per-trick" env-default:"2"`
	MissPenaltyPerTrick int  `yaml:"miss-penalty-per-trick" env-default:"2"`
	TrumpAlwaysPlayable bool `yaml:"trump-always-playable" env-default:"true"`
	BotOpponents        int  `yaml:"bot-opponents" env-default:"3"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Rules translates the config section into the engine's rule set.
func (that *Game) Rules() entity.Rules {
	return entity.Rules{
		ExactBidBonus:       that.ExactBidBonus,
		ExactBidPerTrick:    that.ExactBidPerTrick,
		MissPenaltyPerTrick: that.MissPenaltyPerTrick,
		TrumpAlwaysPlayable: that.TrumpAlwaysPlayable,
	}
}
