package quest

import (
	"fmt"
	"strings"
)

// Kind is the closed set of goal variants.
type Kind uint8

const (
	KindSimple Kind = iota + 1
	KindEternal
	KindChecklist
	KindProgress
	KindNegative
)

// Kinds lists every variant in display order.
var Kinds = []Kind{KindSimple, KindEternal, KindChecklist, KindProgress, KindNegative}

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindEternal:
		return "eternal"
	case KindChecklist:
		return "checklist"
	case KindProgress:
		return "progress"
	case KindNegative:
		return "negative"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a variant name (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return KindSimple, nil
	case "eternal":
		return KindEternal, nil
	case "checklist":
		return KindChecklist, nil
	case "progress":
		return KindProgress, nil
	case "negative":
		return KindNegative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Goal is implemented only by the variant types in this package.
// State changes go through Registry.RecordEvent.
type Goal interface {
	Name() string
	Kind() Kind
	// Points is the configured per-event value. Negative goals report it negated.
	Points() int
	Completed() bool
	Display() string

	// record applies one event and returns the points it awards.
	record() int
}

func statusBox(completed bool) string {
	if completed {
		return "[X]"
	}
	return "[ ]"
}

// Simple completes on its first event.
type Simple struct {
	name      string
	points    int
	completed bool
}

// NewSimple restores a simple goal.
func NewSimple(name string, points int, completed bool) *Simple {
	return &Simple{name: name, points: points, completed: completed}
}

func (g *Simple) Name() string    { return g.name }
func (g *Simple) Kind() Kind      { return KindSimple }
func (g *Simple) Points() int     { return g.points }
func (g *Simple) Completed() bool { return g.completed }

func (g *Simple) Display() string {
	return statusBox(g.completed) + " " + g.name
}

func (g *Simple) record() int {
	if g.completed {
		return 0
	}
	g.completed = true
	return g.points
}

// Eternal never completes and scores on every event.
type Eternal struct {
	name   string
	points int
}

func NewEternal(name string, points int) *Eternal {
	return &Eternal{name: name, points: points}
}

func (g *Eternal) Name() string    { return g.name }
func (g *Eternal) Kind() Kind      { return KindEternal }
func (g *Eternal) Points() int     { return g.points }
func (g *Eternal) Completed() bool { return false }

func (g *Eternal) Display() string {
	return statusBox(false) + " " + g.name
}

func (g *Eternal) record() int { return g.points }

// Checklist completes when Count reaches Target. The completing event
// pays a bonus of ten times the points on top of the regular award.
type Checklist struct {
	name      string
	points    int
	target    int
	count     int
	completed bool
}

// NewChecklist restores a checklist goal. Completion is derived from count.
func NewChecklist(name string, points, target, count int) *Checklist {
	return &Checklist{
		name:      name,
		points:    points,
		target:    target,
		count:     count,
		completed: target > 0 && count >= target,
	}
}

func (g *Checklist) Name() string    { return g.name }
func (g *Checklist) Kind() Kind      { return KindChecklist }
func (g *Checklist) Points() int     { return g.points }
func (g *Checklist) Completed() bool { return g.completed }
func (g *Checklist) Target() int     { return g.target }
func (g *Checklist) Count() int      { return g.count }

// Bonus is the total award of the completing event.
func (g *Checklist) Bonus() int { return g.points + g.points*10 }

func (g *Checklist) Display() string {
	return fmt.Sprintf("%s %s (Completed %d/%d times)", statusBox(g.completed), g.name, g.count, g.target)
}

func (g *Checklist) record() int {
	if g.completed {
		return 0
	}
	g.count++
	if g.count == g.target {
		g.completed = true
		return g.Bonus()
	}
	return g.points
}

// Progress completes once Current reaches Total.
type Progress struct {
	name      string
	points    int
	total     int
	current   int
	completed bool
}

func NewProgress(name string, points, total, current int) *Progress {
	return &Progress{
		name:      name,
		points:    points,
		total:     total,
		current:   current,
		completed: total > 0 && current >= total,
	}
}

func (g *Progress) Name() string    { return g.name }
func (g *Progress) Kind() Kind      { return KindProgress }
func (g *Progress) Points() int     { return g.points }
func (g *Progress) Completed() bool { return g.completed }
func (g *Progress) Total() int      { return g.total }
func (g *Progress) Current() int    { return g.current }

func (g *Progress) Display() string {
	return fmt.Sprintf("%s %s (Progress %d/%d)", statusBox(g.completed), g.name, g.current, g.total)
}

func (g *Progress) record() int {
	if g.completed {
		return 0
	}
	g.current++
	if g.current >= g.total {
		g.completed = true
	}
	return g.points
}

// Negative tracks a habit to avoid. Each event costs points; it never completes.
type Negative struct {
	name   string
	points int
}

// NewNegative stores the penalty as a negative value whatever the sign of points.
func NewNegative(name string, points int) *Negative {
	if points > 0 {
		points = -points
	}
	return &Negative{name: name, points: points}
}

func (g *Negative) Name() string    { return g.name }
func (g *Negative) Kind() Kind      { return KindNegative }
func (g *Negative) Points() int     { return g.points }
func (g *Negative) Completed() bool { return false }

func (g *Negative) Display() string {
	return "[-] " + g.name
}

func (g *Negative) record() int { return g.points }
