package session

import (
	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/domain/villager"
)

// Play runs every recorded frame through s with a fixed dt and returns the
// final snapshot. Events are applied before the frame is advanced, the same
// order the live loop uses.
func Play(s *Session, r *replay.Replayer, dt float64) villager.Snapshot {
	snap := s.Snapshot()
	for {
		events, ok := r.NextFrame()
		if !ok {
			return snap
		}
		for _, ev := range events {
			if ev.Trigger != "" {
				s.Trigger(villager.Trigger(ev.Trigger))
			}
			if ev.Command != "" {
				s.Command(ev.Command)
			}
			if ev.Sites != nil {
				if _, err := s.ReloadSites(ev.Sites); err != nil {
					s.logger.Printf("villager: ignoring recorded sites: %v", err)
				}
			}
		}
		snap = s.Step(dt, 1)
	}
}
