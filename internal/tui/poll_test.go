package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padwan-ai/padwan-cli/internal/render"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// fakeBatchClient replays a sequence of job states
type fakeBatchClient struct {
	states []llmtypes.JobState
	calls  int
	err    error
}

func (f *fakeBatchClient) CreateBatch(ctx context.Context, requests []llmtypes.BatchRequest, displayName string) (*llmtypes.BatchJob, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBatchClient) GetBatch(ctx context.Context, name string) (*llmtypes.BatchJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	state := f.states[f.calls]
	if f.calls < len(f.states)-1 {
		f.calls++
	}
	return &llmtypes.BatchJob{Name: name, State: state}, nil
}

func (f *fakeBatchClient) ListBatches(ctx context.Context, pageSize int) ([]*llmtypes.BatchJob, string, error) {
	return nil, "", errors.New("not implemented")
}

func (f *fakeBatchClient) CancelBatch(ctx context.Context, name string) error {
	return errors.New("not implemented")
}

func newTestPollModel(client llmtypes.BatchClient) PollModel {
	return NewPollModel(client, "batches/test", time.Millisecond, time.Minute, render.DarkTheme)
}

func TestPollModelReachesTerminalState(t *testing.T) {
	client := &fakeBatchClient{states: []llmtypes.JobState{llmtypes.JobStateRunning, llmtypes.JobStateSucceeded}}
	m := newTestPollModel(client)

	// First fetch observes RUNNING and schedules another tick
	updated, cmd := m.Update(m.fetch()())
	m = updated.(PollModel)
	require.NotNil(t, m.Job())
	assert.Equal(t, llmtypes.JobStateRunning, m.Job().State)
	assert.NotNil(t, cmd)
	assert.False(t, m.done)

	// Second fetch observes SUCCEEDED and quits
	updated, cmd = m.Update(m.fetch()())
	m = updated.(PollModel)
	assert.Equal(t, llmtypes.JobStateSucceeded, m.Job().State)
	assert.True(t, m.done)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPollModelRecordsTransitions(t *testing.T) {
	client := &fakeBatchClient{states: []llmtypes.JobState{
		llmtypes.JobStatePending, llmtypes.JobStatePending, llmtypes.JobStateSucceeded,
	}}
	m := newTestPollModel(client)

	for i := 0; i < 3; i++ {
		updated, _ := m.Update(m.fetch()())
		m = updated.(PollModel)
	}

	// Repeated states collapse into one history entry each
	require.Len(t, m.history, 2)
	assert.Contains(t, m.history[0], "PENDING")
	assert.Contains(t, m.history[1], "SUCCEEDED")
}

func TestPollModelFetchError(t *testing.T) {
	client := &fakeBatchClient{err: errors.New("network down")}
	m := newTestPollModel(client)

	updated, cmd := m.Update(m.fetch()())
	m = updated.(PollModel)
	require.Error(t, m.Err())
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPollModelTimeoutKeepsLastJob(t *testing.T) {
	client := &fakeBatchClient{states: []llmtypes.JobState{llmtypes.JobStateRunning}}
	m := newTestPollModel(client)

	updated, _ := m.Update(m.fetch()())
	m = updated.(PollModel)

	updated, cmd := m.Update(timeoutMsg{})
	m = updated.(PollModel)
	assert.Equal(t, tea.Quit(), cmd())

	// Timeout is not an error; the last observed job stays available
	assert.NoError(t, m.Err())
	assert.True(t, m.TimedOut())
	require.NotNil(t, m.Job())
	assert.Equal(t, llmtypes.JobStateRunning, m.Job().State)
	assert.Contains(t, m.View(), "timed out")
}

func TestPollModelInterrupt(t *testing.T) {
	client := &fakeBatchClient{states: []llmtypes.JobState{llmtypes.JobStateRunning}}
	m := newTestPollModel(client)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(PollModel)
	require.Error(t, m.Err())
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPollModelViewBeforeFirstFetch(t *testing.T) {
	client := &fakeBatchClient{states: []llmtypes.JobState{llmtypes.JobStateRunning}}
	m := newTestPollModel(client)

	assert.Contains(t, m.View(), "batches/test")
}
