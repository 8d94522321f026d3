package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrMalformedInput = goerr.New("malformed input")
)
