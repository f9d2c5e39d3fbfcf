package services

import "errors"

// ErrBusy is returned when a submission arrives while another one is still
// in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Runner serializes submissions: the pipeline processes one at a time, and
// further submissions are rejected until the active one completes.
type Runner interface {
	Run(fn func() error) error
}

type runner struct {
	slot chan struct{}
}

func NewRunner() Runner {
	return &runner{
		slot: make(chan struct{}, 1),
	}
}

// Run implements Runner.
func (r *runner) Run(fn func() error) error {
	select {
	case r.slot <- struct{}{}:
	default:
		return ErrBusy
	}
	defer func() { <-r.slot }()

	return fn()
}
