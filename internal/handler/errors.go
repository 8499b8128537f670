package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration has no listen address. This is a fatal misconfiguration and
// stops the application at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
