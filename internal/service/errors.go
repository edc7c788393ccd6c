package service

import "errors"

var (
	// ErrUnauthorized is the single deny outcome for every ownership-chain
	// failure. A missing pet and somebody else's pet are indistinguishable
	// on purpose, so callers cannot probe for existence.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
)
