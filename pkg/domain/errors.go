package domain

import "errors"

// ErrNilController is returned when a graph is built against a nil controller.
var ErrNilController = errors.New("nil controller")

// ErrUnknownState is returned when a state id is not registered on the controller.
var ErrUnknownState = errors.New("unknown state")

// ErrGraphNotFound is returned when a loader cannot find the requested graph.
var ErrGraphNotFound = errors.New("graph not found")

// ErrUnsupportedFormat is returned for graph documents with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported graph format")
