package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrWrongCredentials = errors.New("incorrect email or password")
	ErrValidation       = errors.New("validation failed")
	ErrRateLimited      = errors.New("too many requests")

	ErrUpstreamAgent = errors.New("retrieval agent error")
	ErrUpstreamLLM   = errors.New("vision model error")
	ErrPersistence   = errors.New("persistence error")

	ErrTokenCreationFailed   = errors.New("session token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
