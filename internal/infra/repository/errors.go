package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrEmptyUpdate     = errors.New("empty multi-path update")
)
