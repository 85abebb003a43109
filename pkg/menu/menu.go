// Package menu implements the numbered console menu.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stefanpenner/quest/pkg/quest"
)

// Persister is the storage the menu loads from and saves to.
type Persister interface {
	LoadOrNew() (*quest.Registry, bool, error)
	Save(*quest.Registry) error
	AppendHistory(context.Context, quest.Outcome) error
}

// Menu reads choices line by line from In and writes prompts to Out.
type Menu struct {
	store Persister
	in    *bufio.Scanner
	out   io.Writer
	reg   *quest.Registry

	// outcomes recorded since the last save; written to history once saved
	pending []quest.Outcome
}

func New(store Persister, in io.Reader, out io.Writer) *Menu {
	return &Menu{store: store, in: bufio.NewScanner(in), out: out}
}

// Registry returns the in-memory registry (nil before Run).
func (m *Menu) Registry() *quest.Registry { return m.reg }

// Run loads saved data and loops until "Save and Exit" or end of input.
// A numeric field that fails to parse ends the loop with an error.
func (m *Menu) Run(ctx context.Context) error {
	reg, fresh, err := m.store.LoadOrNew()
	if err != nil {
		return err
	}
	if fresh {
		m.println("No saved data found.")
	}
	m.reg = reg

	for {
		m.println("\nEternal Quest Program")
		m.println("1. Create Goal")
		m.println("2. Record Event")
		m.println("3. Display Goals")
		m.println("4. Display Score")
		m.println("5. Save and Exit")

		choice, err := m.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := m.createGoal(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "2":
			if err := m.recordEvent(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "3":
			for _, line := range m.reg.DisplayGoals() {
				m.println(line)
			}
		case "4":
			m.println(m.reg.DisplayScore())
		case "5":
			return m.save(ctx)
		default:
			m.println("Invalid choice.")
		}
	}
}

func (m *Menu) createGoal() error {
	kindName, err := m.prompt("Enter goal type (simple, eternal, checklist, progress, negative): ")
	if err != nil {
		return err
	}
	name, err := m.prompt("Enter goal name: ")
	if err != nil {
		return err
	}
	points, err := m.promptInt("Enter points: ")
	if err != nil {
		return err
	}

	var p quest.Params
	switch strings.ToLower(strings.TrimSpace(kindName)) {
	case "checklist":
		if p.Target, err = m.promptInt("Enter target count: "); err != nil {
			return err
		}
	case "progress":
		if p.Total, err = m.promptInt("Enter total progress: "); err != nil {
			return err
		}
	}

	if _, err := m.reg.CreateGoal(kindName, name, points, p); err != nil {
		m.println(err.Error())
	}
	return nil
}

func (m *Menu) recordEvent() error {
	name, err := m.prompt("Enter goal name to record event: ")
	if err != nil {
		return err
	}

	out, err := m.reg.RecordEvent(name)
	if errors.Is(err, quest.ErrNotFound) {
		m.println(fmt.Sprintf("Goal '%s' not found.", name))
		return nil
	}
	if err != nil {
		return err
	}
	if out.Closed {
		m.println(fmt.Sprintf("Goal '%s' is already complete.", name))
		return nil
	}

	for lvl := out.Level - out.LevelsGained + 1; lvl <= out.Level; lvl++ {
		m.println(fmt.Sprintf("Level Up! You are now level %d.", lvl))
	}
	m.pending = append(m.pending, out)
	return nil
}

// save writes the snapshot, then the events it now contains to history.
func (m *Menu) save(ctx context.Context) error {
	if err := m.store.Save(m.reg); err != nil {
		return err
	}
	for _, out := range m.pending {
		if err := m.store.AppendHistory(ctx, out); err != nil {
			m.println("Could not write history: " + err.Error())
			break
		}
	}
	m.pending = nil
	return nil
}

func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return n, nil
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
