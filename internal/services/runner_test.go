package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunsSequentialSubmissions(t *testing.T) {
	r := NewRunner()

	for i := 0; i < 3; i++ {
		err := r.Run(func() error { return nil })
		require.NoError(t, err)
	}
}

func TestRunner_PropagatesError(t *testing.T) {
	r := NewRunner()
	want := errors.New("pipeline failed")

	err := r.Run(func() error { return want })

	assert.ErrorIs(t, err, want)
}

func TestRunner_RejectsConcurrentSubmission(t *testing.T) {
	r := NewRunner()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- r.Run(func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started

	// A second submission while the first is in flight is rejected
	err := r.Run(func() error { return nil })
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	// The slot frees up once the first submission completes
	assert.NoError(t, r.Run(func() error { return nil }))
}
