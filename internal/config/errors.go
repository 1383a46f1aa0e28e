package config

import "errors"

var ErrConfigLoadFailed = errors.New("failed to load configuration")
