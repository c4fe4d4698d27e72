// Package session owns the per-frame villager loop shared by every front end:
// triggers and manual commands are applied, the controller is advanced, and
// the result is recorded and published. A Session has exactly one writer,
// the goroutine that calls its methods.
package session

import (
	"log"

	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// DefaultPublishEvery is how many frames may pass between published snapshots
// while the state does not change
const DefaultPublishEvery = 6

// Publisher receives snapshots for outside readers
type Publisher interface {
	Publish(snap villager.Snapshot)
}

// Session drives one villager controller
type Session struct {
	ctrl     *villager.Controller
	router   *system.TriggerRouter
	recorder *replay.Recorder
	pub      Publisher
	logger   *log.Logger

	publishEvery int
	sincePublish int
	lastState    villager.BehaviorState
	published    bool
	frame        int

	listeners []func(from, to villager.BehaviorState)
}

// Option configures a Session
type Option func(*Session)

// WithRecorder records every trigger and manual command
func WithRecorder(r *replay.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithPublisher publishes snapshots on state changes and periodically while moving
func WithPublisher(p Publisher) Option {
	return func(s *Session) { s.pub = p }
}

// WithLogger sets the logger for transitions and dropped input
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPublishEvery overrides DefaultPublishEvery
func WithPublishEvery(frames int) Option {
	return func(s *Session) {
		if frames > 0 {
			s.publishEvery = frames
		}
	}
}

// New creates a session around ctrl. It takes over ctrl.OnTransition.
func New(ctrl *villager.Controller, router *system.TriggerRouter, opts ...Option) *Session {
	s := &Session{
		ctrl:         ctrl,
		router:       router,
		logger:       log.Default(),
		publishEvery: DefaultPublishEvery,
		lastState:    ctrl.State(),
	}
	for _, opt := range opts {
		opt(s)
	}
	ctrl.OnTransition = s.transition
	return s
}

// OnTransition registers fn to be called after every state change
func (s *Session) OnTransition(fn func(from, to villager.BehaviorState)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) transition(from, to villager.BehaviorState) {
	s.logger.Printf("villager: %s -> %s (frame %d)", from, to, s.frame)
	for _, fn := range s.listeners {
		fn(from, to)
	}
}

// Trigger applies an external trigger through the router
func (s *Session) Trigger(t villager.Trigger) {
	if _, ok := villager.ParseTrigger(string(t)); !ok {
		s.logger.Printf("villager: ignoring unknown trigger %q", t)
		return
	}
	if s.recorder != nil {
		s.recorder.RecordTrigger(t)
	}
	s.router.Handle(s.ctrl, t)
}

// Command applies a manual command (gold, wood, return). Unknown commands
// are ignored.
func (s *Session) Command(cmd string) {
	intent, ok := commandIntent(cmd)
	if !ok {
		s.logger.Printf("villager: ignoring unknown command %q", cmd)
		return
	}
	if s.recorder != nil {
		s.recorder.RecordCommand(cmd)
	}
	intent.Apply(s.ctrl)
}

// Manual applies intents produced by a manual control surface
func (s *Session) Manual(intents []system.Intent) {
	for _, in := range intents {
		if cmd, ok := intentCommand(in); ok {
			s.Command(cmd)
		}
	}
}

// ReloadSites swaps the controller's site table for the one described by cfg.
// The swap only happens while the villager is idle at home; applied reports
// whether it did. Applied swaps are recorded.
func (s *Session) ReloadSites(cfg *config.VillagerConfig) (applied bool, err error) {
	table, err := system.LoadSites(cfg)
	if err != nil {
		return false, err
	}
	if !s.ctrl.SetSites(table) {
		return false, nil
	}
	if s.recorder != nil {
		s.recorder.RecordSites(cfg)
	}
	s.logger.Printf("villager: sites reloaded (frame %d)", s.frame)
	return true, nil
}

// Step advances the controller by dt and closes the frame
func (s *Session) Step(dt, scale float64) villager.Snapshot {
	snap := s.ctrl.Advance(dt, scale)
	if s.recorder != nil {
		s.recorder.EndFrame()
	}
	s.frame++
	s.publish(snap)
	return snap
}

func (s *Session) publish(snap villager.Snapshot) {
	if s.pub == nil {
		return
	}
	s.sincePublish++
	changed := !s.published || snap.State != s.lastState
	periodic := snap.Moving() && s.sincePublish >= s.publishEvery
	if !changed && !periodic {
		return
	}
	s.pub.Publish(snap)
	s.published = true
	s.lastState = snap.State
	s.sincePublish = 0
}

// Snapshot returns the current controller state
func (s *Session) Snapshot() villager.Snapshot {
	return s.ctrl.Snapshot()
}

// Controller returns the driven controller
func (s *Session) Controller() *villager.Controller {
	return s.ctrl
}

// Router returns the trigger router
func (s *Session) Router() *system.TriggerRouter {
	return s.router
}

// Frame returns the number of completed frames
func (s *Session) Frame() int {
	return s.frame
}

func commandIntent(cmd string) (system.Intent, bool) {
	switch cmd {
	case replay.CommandGold:
		return system.DispatchIntent{Category: villager.Gold}, true
	case replay.CommandWood:
		return system.DispatchIntent{Category: villager.Wood}, true
	case replay.CommandReturn:
		return system.ReturnIntent{}, true
	default:
		return nil, false
	}
}

func intentCommand(in system.Intent) (string, bool) {
	switch i := in.(type) {
	case system.DispatchIntent:
		switch i.Category {
		case villager.Gold:
			return replay.CommandGold, true
		case villager.Wood:
			return replay.CommandWood, true
		}
	case system.ReturnIntent:
		return replay.CommandReturn, true
	}
	return "", false
}
