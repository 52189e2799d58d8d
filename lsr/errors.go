package lsr

import "errors"

var (
	// ErrMatrixShape is returned when a cost matrix is not square.
	ErrMatrixShape = errors.New("cost matrix is not square")

	// ErrCostRange is returned when a cost matrix holds a cost greater than
	// MaxCost.
	ErrCostRange = errors.New("link cost out of range")

	// ErrSizeMismatch is returned when a network is rebuilt from a matrix
	// whose size differs from the network's router count.
	ErrSizeMismatch = errors.New("cost matrix size does not match network")

	// ErrUnknownRouter is returned when a router ID is not in [1, N].
	ErrUnknownRouter = errors.New("unknown router")

	// ErrRouterDown is returned when shortest paths are requested from a
	// router that was removed from the network.
	ErrRouterDown = errors.New("router is down")
)
