package main

import "time"

type Config struct {
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=3001"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	BadgerFilepath string        `env:"BADGER_FILEPATH,default=./data/jobs"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES,default=52428800"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT,default=2m"`
	RenderTimeout  time.Duration `env:"RENDER_TIMEOUT,default=5m"`
}
