package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Sleeper SleeperAPI
	ESPN    ESPNAPI
	Redis   Redis
	Engine  Engine
}

type SleeperAPI struct {
	Username  string   `envconfig:"SLEEPER_USERNAME" required:"true"`
	Season    string   `envconfig:"SEASON" required:"true"`
	LeagueIDs []string `envconfig:"SLEEPER_LEAGUE_IDS"`
}

type ESPNAPI struct {
	Year      string   `envconfig:"ESPN_YEAR"`
	LeagueIDs []string `envconfig:"ESPN_LEAGUE_IDS"`
	SWID      string   `envconfig:"SWID"`
	ESPNS2    string   `envconfig:"ESPN_S2"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB"`
}

type Engine struct {
	DefaultStdDev float64       `envconfig:"SCORE_STDDEV" default:"40"`
	StatCacheTTL  time.Duration `envconfig:"STAT_CACHE_TTL" default:"5m"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
