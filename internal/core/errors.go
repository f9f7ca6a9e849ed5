package core

import "errors"

var (
	// ErrInvalidIndex is returned for a child position outside the valid range.
	ErrInvalidIndex = errors.New("invalid child index")
	// ErrNotChild is returned when an operation needs an existing child.
	ErrNotChild = errors.New("not a child of this container")
	// ErrNilNode is returned when a nil node is inserted.
	ErrNilNode = errors.New("child is nil")
	// ErrCellUnavailable is returned when the pool cannot produce a cell.
	ErrCellUnavailable = errors.New("cannot create tree node object")
	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("node cannot be added under itself")
	// ErrDetached is returned when a node needs a tree it does not have.
	ErrDetached = errors.New("node is not part of a tree")
)
