package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())

	calls := 0
	job := FuncJob{JobName: "count", Fn: func() error {
		calls++
		return nil
	}}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, calls)

	failing := FuncJob{JobName: "fail", Fn: func() error { return errors.New("boom") }}
	assert.EqualError(t, s.RunNow(failing), "boom")
}

func TestScheduler_AddJobValidatesSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := FuncJob{JobName: "noop", Fn: func() error { return nil }}

	assert.NoError(t, s.AddJob("@daily", job))
	assert.NoError(t, s.AddJob("0 3 * * *", job))
	assert.Error(t, s.AddJob("every tuesday", job))

	s.Start()
	s.Stop()
}
