package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config returns the value of an environment variable, loading .env once.
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, reading environment directly")
		}
		loaded = true
	}
	return os.Getenv(key)
}
