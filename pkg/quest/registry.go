package quest

import (
	"fmt"
	"strings"
)

// LevelSize is the score needed per level.
const LevelSize = 1000

// Params carries the variant-specific creation arguments.
type Params struct {
	Target int // checklist
	Total  int // progress
}

// Outcome describes the effect of one recorded event.
type Outcome struct {
	Goal         Goal
	Awarded      int
	Score        int
	Level        int
	LevelsGained int
	// Closed is set when the goal was already complete and the event changed nothing.
	Closed bool
}

// Registry is the ordered set of goals plus the running score and level.
type Registry struct {
	goals []Goal
	score int
	level int
}

// NewRegistry returns an empty registry at level 1.
func NewRegistry() *Registry {
	return &Registry{level: 1}
}

// Restore rebuilds a registry from persisted state.
func Restore(score, level int, goals []Goal) (*Registry, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: level %d", ErrInvalidArgument, level)
	}
	r := &Registry{score: score, level: level}
	for _, g := range goals {
		if g == nil {
			return nil, fmt.Errorf("%w: nil goal", ErrInvalidArgument)
		}
		if _, ok := r.Goal(g.Name()); ok {
			return nil, fmt.Errorf("%w: duplicate goal %q", ErrInvalidArgument, g.Name())
		}
		r.goals = append(r.goals, g)
	}
	return r, nil
}

func (r *Registry) Score() int { return r.score }
func (r *Registry) Level() int { return r.level }
func (r *Registry) Len() int   { return len(r.goals) }

// Goals returns the goals in insertion order.
func (r *Registry) Goals() []Goal {
	out := make([]Goal, len(r.goals))
	copy(out, r.goals)
	return out
}

// Goal finds a goal by exact name.
func (r *Registry) Goal(name string) (Goal, bool) {
	for _, g := range r.goals {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

// CreateGoal builds a goal of the named variant and appends it.
func (r *Registry) CreateGoal(variant, name string, points int, p Params) (Goal, error) {
	kind, err := ParseKind(variant)
	if err != nil {
		return nil, err
	}
	return r.Create(kind, name, points, p)
}

// Create is CreateGoal with an already parsed kind.
func (r *Registry) Create(kind Kind, name string, points int, p Params) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal name is required", ErrInvalidArgument)
	}
	if _, ok := r.Goal(name); ok {
		return nil, fmt.Errorf("%w: goal %q already exists", ErrInvalidArgument, name)
	}
	if points < 0 && kind != KindNegative {
		return nil, fmt.Errorf("%w: points must not be negative", ErrInvalidArgument)
	}

	var g Goal
	switch kind {
	case KindSimple:
		g = NewSimple(name, points, false)
	case KindEternal:
		g = NewEternal(name, points)
	case KindChecklist:
		if p.Target < 1 {
			return nil, fmt.Errorf("%w: checklist target must be at least 1", ErrInvalidArgument)
		}
		g = NewChecklist(name, points, p.Target, 0)
	case KindProgress:
		if p.Total < 1 {
			return nil, fmt.Errorf("%w: progress total must be at least 1", ErrInvalidArgument)
		}
		g = NewProgress(name, points, p.Total, 0)
	case KindNegative:
		g = NewNegative(name, points)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	r.goals = append(r.goals, g)
	return g, nil
}

// RecordEvent applies one event to the named goal, adds the award to the
// score and re-evaluates the level. An unknown name changes nothing.
func (r *Registry) RecordEvent(name string) (Outcome, error) {
	g, ok := r.Goal(name)
	if !ok {
		return Outcome{}, fmt.Errorf("goal %q: %w", name, ErrNotFound)
	}

	wasComplete := g.Completed()
	awarded := g.record()
	r.score += awarded
	gained := r.checkLevelUp()

	return Outcome{
		Goal:         g,
		Awarded:      awarded,
		Score:        r.score,
		Level:        r.level,
		LevelsGained: gained,
		Closed:       wasComplete,
	}, nil
}

// checkLevelUp raises the level once per threshold crossed. Levels are never lost.
func (r *Registry) checkLevelUp() int {
	gained := 0
	for r.score >= r.level*LevelSize {
		r.level++
		gained++
	}
	return gained
}

// DisplayGoals renders one status line per goal.
func (r *Registry) DisplayGoals() []string {
	lines := make([]string, 0, len(r.goals))
	for _, g := range r.goals {
		lines = append(lines, g.Display())
	}
	return lines
}

func (r *Registry) DisplayScore() string {
	return fmt.Sprintf("Score: %d, Level: %d", r.score, r.level)
}
