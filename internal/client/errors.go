package client

import "errors"

var (
	errNoCommand       = errors.New("no command given")
	errUnknownCommand  = errors.New("unknown command")
	errMissingArgument = errors.New("missing argument")
	errNotConfirmed    = errors.New("account deletion requires -yes")
)
