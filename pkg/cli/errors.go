package cli

import "errors"

// Common CLI errors
var (
	ErrNoRequests         = errors.New("no requests in file")
	ErrRequestNotFound    = errors.New("request not found")
	ErrUnknownEnvironment = errors.New("unknown environment")
)
