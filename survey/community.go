package survey

import (
	"fmt"
	"sync"
	"time"
)

// Settings bound survey creation and answer windows for a community.
type Settings struct {
	MinMembers  int
	MinDuration time.Duration
	MaxDuration time.Duration
}

// DefaultSettings matches the stock bot configuration.
func DefaultSettings() Settings {
	return Settings{
		MinMembers:  2,
		MinDuration: time.Minute,
		MaxDuration: 5 * time.Minute,
	}
}

func (s Settings) normalize() Settings {
	if s.MinMembers < 1 {
		s.MinMembers = 1
	}
	if s.MinDuration <= 0 {
		s.MinDuration = time.Second
	}
	if s.MaxDuration < s.MinDuration {
		s.MaxDuration = s.MinDuration
	}
	return s
}

// Clamp bounds a requested answer window to [MinDuration, MaxDuration].
func (s Settings) Clamp(d time.Duration) time.Duration {
	if d > s.MaxDuration {
		return s.MaxDuration
	}
	if d < s.MinDuration {
		return s.MinDuration
	}
	return d
}

// Community is the context a survey lives in: its members and the single
// active-survey slot. All handlers share one Community value.
type Community struct {
	settings Settings

	mu      sync.Mutex
	members []*Participant
	byID    map[int64]*Participant
	active  *Survey
}

// NewCommunity creates an empty community.
func NewCommunity(settings Settings) *Community {
	return &Community{
		settings: settings.normalize(),
		byID:     make(map[int64]*Participant),
	}
}

// Settings returns the normalized community settings.
func (c *Community) Settings() Settings {
	return c.settings
}

// Join adds a member. It returns the existing participant and false when the
// id is already a member.
func (c *Community) Join(id int64, name string) (*Participant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.byID[id]; ok {
		return p, false
	}
	p := NewParticipant(id, name)
	c.members = append(c.members, p)
	c.byID[id] = p
	return p, true
}

// Member looks up a member by id.
func (c *Community) Member(id int64) (*Participant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	return p, ok
}

// Members returns the members in join order.
func (c *Community) Members() []*Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Participant, len(c.members))
	copy(out, c.members)
	return out
}

// Size returns the number of members.
func (c *Community) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// Active returns the survey holding the active slot, or nil.
func (c *Community) Active() *Survey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// CheckCreate reports whether a new survey could be bound right now.
func (c *Community) CheckCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkCreateLocked()
}

func (c *Community) checkCreateLocked() error {
	if c.active != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyActive, c.active.ID)
	}
	if len(c.members) < c.settings.MinMembers {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientMembers, len(c.members), c.settings.MinMembers)
	}
	return nil
}

// bind runs the creation checks and stores the survey built by newSurvey in
// the active slot, all under one lock so two creators cannot both succeed.
func (c *Community) bind(newSurvey func() *Survey) (*Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkCreateLocked(); err != nil {
		return nil, err
	}
	s := newSurvey()
	c.active = s
	return s, nil
}

func (c *Community) release(s *Survey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != s {
		return false
	}
	c.active = nil
	return true
}
