package config

import "os"

type Config struct {
	Addr      string
	JWTSecret string
}

func Load() Config {
	addr := os.Getenv("TEXTILE_POS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:      addr,
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}
