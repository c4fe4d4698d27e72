package main

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/villager/internal/application/session"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/terminal"
)

func newTestSession() *session.Session {
	return session.New(
		villager.NewController(villager.Config{}),
		system.NewTriggerRouter(villager.Wood),
		session.WithLogger(log.New(io.Discard, "", 0)),
	)
}

func TestHandleKey(t *testing.T) {
	sess := newTestSession()

	assert.True(t, handleKey(sess, terminal.ActionNone))
	assert.Equal(t, villager.StateIdle, sess.Snapshot().State)

	assert.True(t, handleKey(sess, terminal.ActionTree))
	assert.Equal(t, villager.StateWalkingToTree, sess.Snapshot().State)

	assert.False(t, handleKey(sess, terminal.ActionQuit))
}

func TestDrainTriggers(t *testing.T) {
	sess := newTestSession()
	ch := make(chan villager.Trigger, 2)
	ch <- villager.TriggerPromptSubmit
	ch <- villager.TriggerStop

	drainTriggers(sess, ch)

	assert.Empty(t, ch)
	snap := sess.Snapshot()
	assert.Equal(t, villager.StateWalkingToMine, snap.State)
	assert.NotPanics(t, func() { drainTriggers(sess, nil) })
}

func TestDrainTriggers_Closed(t *testing.T) {
	sess := newTestSession()
	ch := make(chan villager.Trigger, 1)
	ch <- villager.TriggerPromptSubmit
	close(ch)

	drainTriggers(sess, ch)

	assert.Equal(t, villager.StateWalkingToMine, sess.Snapshot().State)
}

func TestEmbeddedConfigsLoad(t *testing.T) {
	cfg, err := newLoader("").LoadAll()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Stage)
}
