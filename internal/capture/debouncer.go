package capture

import (
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// Debouncer stabilises a noisy stream of per-frame detections. The same text
// must be seen Threshold times in a row and resolve to an in-range scene before
// a navigation is committed. After a commit every observation is ignored until Reset.
type Debouncer struct {
	mu         sync.Mutex
	resolver   *Resolver
	sceneCount int
	threshold  int

	lastText    string
	consecutive int
	committed   bool
}

// NewDebouncer creates a debouncer. A threshold below one is raised to one.
func NewDebouncer(resolver *Resolver, sceneCount, threshold int) *Debouncer {
	if threshold < MinCommitThreshold {
		threshold = MinCommitThreshold
	}
	return &Debouncer{resolver: resolver, sceneCount: sceneCount, threshold: threshold}
}

// Observe feeds one frame's decoded text. An empty string means nothing was
// decoded; it breaks any running streak. ok is true exactly once per episode.
func (d *Debouncer) Observe(text string) (scene domain.SceneIndex, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.committed {
		return 0, false
	}

	if text == d.lastText && d.consecutive > 0 {
		d.consecutive++
	} else {
		d.lastText = text
		d.consecutive = 1
	}

	if text == "" || d.consecutive < d.threshold {
		return 0, false
	}

	target, found := d.resolver.Resolve(text)
	if !found || !target.Valid(d.sceneCount) {
		return 0, false
	}

	d.committed = true
	return target, true
}

// Reset clears the streak and re-arms the debouncer
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastText = ""
	d.consecutive = 0
	d.committed = false
}

// Committed reports whether this episode already produced a navigation
func (d *Debouncer) Committed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Threshold returns the configured commit threshold
func (d *Debouncer) Threshold() int {
	return d.threshold
}
