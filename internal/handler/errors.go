package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no transport
// address is configured, leaving no handler to initialize. This is treated
// as a fatal misconfiguration and aborts startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
