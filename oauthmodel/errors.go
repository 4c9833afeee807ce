package oauthmodel

import "errors"

var (
	ErrInvalidResponseMode = errors.New("invalid response mode")
)
