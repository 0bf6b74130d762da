package config

import "time"

type Config struct {
	HistoryWindowSize int
	TitleMaxLength    int
	MaxPointsPerAward int
	GenerateTimeout   time.Duration
}

func NewConfig() *Config {
	return &Config{
		HistoryWindowSize: 20,
		TitleMaxLength:    50,
		MaxPointsPerAward: 100,
		GenerateTimeout:   30 * time.Second,
	}
}
