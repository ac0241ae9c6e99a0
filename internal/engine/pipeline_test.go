package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStage appends its name to the run's names when executed.
type recordingStage struct {
	name string
	err  error
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Run(_ context.Context, r *run) error {
	if s.err != nil {
		return s.err
	}
	r.names = append(r.names, s.name)
	return nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	require.NotNil(t, p)
	assert.Empty(t, p.Names())
}

func TestPipeline_Names(t *testing.T) {
	p := NewPipeline(&recordingStage{name: "one"}, &recordingStage{name: "two"})
	assert.Equal(t, []string{"one", "two"}, p.Names())
}

func TestPipeline_ExecuteInOrder(t *testing.T) {
	p := NewPipeline(&recordingStage{name: "first"}, &recordingStage{name: "second"})
	r := &run{}

	require.NoError(t, p.Execute(context.Background(), r))
	assert.Equal(t, []string{"first", "second"}, r.names)
}

func TestPipeline_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(
		&recordingStage{name: "ok"},
		&recordingStage{name: "broken", err: boom},
		&recordingStage{name: "never"},
	)
	r := &run{}

	err := p.Execute(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "stage broken: boom", err.Error())
	assert.Equal(t, []string{"ok"}, r.names)
}
