package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyKey        = errors.New("input param empty")
	ErrMissingVariable = errors.New("variable not set")
)

// InitConfig loads a .env file into the process environment when one exists.
func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
		return
	}

	log.Println("Successfully loaded environment variables")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", ErrEmptyKey
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s: %w", v, ErrMissingVariable)
	}

	return b, nil
}

// Settings is the server configuration. Zero tuning overrides keep the
// simulation defaults.
type Settings struct {
	Addr          string
	TickHz        int
	BroadcastHz   int
	Seed          uint64
	ClickRate     float64 // click frames per second per connection
	ClickBurst    int
	AllowedOrigin string

	BaseDots  int
	MapWidth  float64
	MapHeight float64
}

func Defaults() Settings {
	return Settings{
		Addr:        ":8080",
		TickHz:      60,
		BroadcastHz: 60,
		ClickRate:   30,
		ClickBurst:  10,
	}
}

// Load reads Settings from the environment on top of Defaults.
func Load() (Settings, error) {
	s := Defaults()
	if v, err := GetEnvVariable("ADDR"); err == nil {
		s.Addr = v
	}
	if v, err := GetEnvVariable("ALLOWED_ORIGIN"); err == nil {
		s.AllowedOrigin = v
	}

	var err error
	if s.TickHz, err = envInt("TICK_HZ", s.TickHz); err != nil {
		return s, err
	}
	if s.BroadcastHz, err = envInt("BROADCAST_HZ", s.BroadcastHz); err != nil {
		return s, err
	}
	if s.ClickBurst, err = envInt("CLICK_BURST", s.ClickBurst); err != nil {
		return s, err
	}
	if s.BaseDots, err = envInt("BASE_DOTS", s.BaseDots); err != nil {
		return s, err
	}
	if s.ClickRate, err = envFloat("CLICK_RATE", s.ClickRate); err != nil {
		return s, err
	}
	if s.MapWidth, err = envFloat("MAP_WIDTH", s.MapWidth); err != nil {
		return s, err
	}
	if s.MapHeight, err = envFloat("MAP_HEIGHT", s.MapHeight); err != nil {
		return s, err
	}
	if v, err := GetEnvVariable("SEED"); err == nil {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return s, fmt.Errorf("parse SEED: %w", perr)
		}
		s.Seed = seed
	}

	if s.TickHz <= 0 || s.BroadcastHz <= 0 {
		return s, fmt.Errorf("tick and broadcast rates must be positive (got %d, %d)", s.TickHz, s.BroadcastHz)
	}
	return s, nil
}

func envInt(key string, def int) (int, error) {
	v, err := GetEnvVariable(key)
	if err != nil {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v, err := GetEnvVariable(key)
	if err != nil {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}
