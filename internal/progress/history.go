package progress

import "time"

// Snapshot is one append-only history entry: a readiness score recorded for a
// goal at a point in time. Snapshots are never edited or deleted here.
type Snapshot struct {
	ID        string    `json:"id"`
	GoalTitle string    `json:"goal_title"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// History is a timestamp-ordered snapshot sequence for one goal. The first
// entry is the baseline, the most recent is the latest.
type History struct {
	Snapshots []Snapshot
}

// Baseline returns the first recorded snapshot, or false when the history is
// empty.
func (h *History) Baseline() (Snapshot, bool) {
	if len(h.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return h.Snapshots[0], true
}

// Latest returns the most recent snapshot, or false when the history is
// empty.
func (h *History) Latest() (Snapshot, bool) {
	if len(h.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return h.Snapshots[len(h.Snapshots)-1], true
}

// Improvement reports latest minus baseline. It is absent when fewer than two
// snapshots exist.
func (h *History) Improvement() (int, bool) {
	if len(h.Snapshots) < 2 {
		return 0, false
	}
	return h.Snapshots[len(h.Snapshots)-1].Score - h.Snapshots[0].Score, true
}
