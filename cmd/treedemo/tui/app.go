// Package tui implements the Bubble Tea application model for treedemo.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/cshekharsharma/movetree/cmd/treedemo/sim"
)

// ─────────────────────────────────────────────────────────────
// Styles
// ─────────────────────────────────────────────────────────────

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	replicaStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	borderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	convergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	divergedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ─────────────────────────────────────────────────────────────
// View enum
// ─────────────────────────────────────────────────────────────

type viewKind int

const (
	viewDashboard viewKind = iota
	viewMove
)

// ─────────────────────────────────────────────────────────────
// Messages
// ─────────────────────────────────────────────────────────────

type movedMsg struct{ op sim.Op }
type errorMsg struct{ err error }

// ─────────────────────────────────────────────────────────────
// App model
// ─────────────────────────────────────────────────────────────

// App is the root Bubble Tea model: N simulated replicas, one of them
// the "driver" the operator types moves from, broadcasting to the rest
// only when the operator asks it to, so out-of-order delivery can be
// demonstrated deliberately.
type App struct {
	simulation *sim.Simulation
	driver     string
	view       viewKind

	childInput  textinput.Model
	parentInput textinput.Model
	labelInput  textinput.Model
	focusIdx    int

	status    string
	statusErr bool
}

// New builds an App simulating replicaCount replicas, with driver as
// the name of the one the operator controls.
func New(replicaCount int, driver string, log *logrus.Logger) (*App, error) {
	if replicaCount < 1 {
		return nil, fmt.Errorf("replica count must be at least 1, got %d", replicaCount)
	}
	names := make([]string, replicaCount)
	names[0] = driver
	for i := 1; i < replicaCount; i++ {
		names[i] = fmt.Sprintf("replica-%d", i+1)
	}

	child := textinput.New()
	child.Placeholder = "child id"
	parent := textinput.New()
	parent.Placeholder = "parent id"
	label := textinput.New()
	label.Placeholder = "label (metadata)"

	return &App{
		simulation:  sim.New(names, log),
		driver:      driver,
		childInput:  child,
		parentInput: parent,
		labelInput:  label,
	}, nil
}

// Run starts the Bubble Tea program in the alt screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init satisfies tea.Model; treedemo needs no initial command.
func (a *App) Init() tea.Cmd { return nil }

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if a.view == viewDashboard {
				return a, tea.Quit
			}
			a.view = viewDashboard
			return a, nil
		case "m":
			if a.view == viewDashboard {
				a.view = viewMove
				a.focusIdx = 0
				a.childInput.Focus()
				a.parentInput.Blur()
				a.labelInput.Blur()
				return a, textinput.Blink
			}
		case "b":
			if a.view == viewDashboard {
				a.simulation.Broadcast()
				a.status = "broadcast delivered pending operations to all replicas"
				a.statusErr = false
			}
		case "tab":
			if a.view == viewMove {
				a.focusIdx = (a.focusIdx + 1) % 3
				a.focusInput()
				return a, nil
			}
		case "esc":
			a.view = viewDashboard
			return a, nil
		case "enter":
			if a.view == viewMove {
				return a.submitMove()
			}
		}

	case movedMsg:
		a.status = fmt.Sprintf("%s: move %s -> %s (%s) stamped", a.driver, msg.op.Child, msg.op.Parent, msg.op.Label)
		a.statusErr = false
		a.view = viewDashboard

	case errorMsg:
		a.status = msg.err.Error()
		a.statusErr = true
	}

	if a.view == viewMove {
		var cmd tea.Cmd
		switch a.focusIdx {
		case 0:
			a.childInput, cmd = a.childInput.Update(msg)
		case 1:
			a.parentInput, cmd = a.parentInput.Update(msg)
		case 2:
			a.labelInput, cmd = a.labelInput.Update(msg)
		}
		return a, cmd
	}

	return a, nil
}

func (a *App) focusInput() {
	a.childInput.Blur()
	a.parentInput.Blur()
	a.labelInput.Blur()
	switch a.focusIdx {
	case 0:
		a.childInput.Focus()
	case 1:
		a.parentInput.Focus()
	case 2:
		a.labelInput.Focus()
	}
}

func (a *App) submitMove() (tea.Model, tea.Cmd) {
	child := strings.TrimSpace(a.childInput.Value())
	parent := strings.TrimSpace(a.parentInput.Value())
	label := strings.TrimSpace(a.labelInput.Value())
	if child == "" || parent == "" {
		a.status = "child and parent ids are required"
		a.statusErr = true
		return a, nil
	}

	r, ok := a.simulation.Replica(a.driver)
	if !ok {
		return a, func() tea.Msg { return errorMsg{fmt.Errorf("unknown driver replica %q", a.driver)} }
	}
	r.Move(child, parent, label)

	a.childInput.SetValue("")
	a.parentInput.SetValue("")
	a.labelInput.SetValue("")

	return a, func() tea.Msg { return movedMsg{op: sim.Op{Actor: a.driver, Child: child, Parent: parent, Label: label}} }
}

// View renders the UI.
func (a *App) View() string {
	switch a.view {
	case viewMove:
		return a.moveView()
	default:
		return a.dashboardView()
	}
}

func (a *App) dashboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("movetree demo") + "\n\n")

	for _, name := range a.simulation.Names() {
		r, _ := a.simulation.Replica(name)
		label := name
		if name == a.driver {
			label += " (driver)"
		}
		b.WriteString(replicaStyle.Render(label) + "\n")
		tree := r.Core.State().Tree()
		renderSubtree(&b, tree, sim.Root, 1)
		b.WriteString(dimStyle.Render(fmt.Sprintf("  pending: %d ops\n", r.Pending())))
	}

	b.WriteString("\n")
	if a.simulation.Converged() {
		b.WriteString(convergedStyle.Render("converged") + "\n")
	} else {
		b.WriteString(divergedStyle.Render("diverged, broadcast to resolve") + "\n")
	}

	if a.status != "" {
		b.WriteString("\n")
		if a.statusErr {
			b.WriteString(errorStyle.Render("✗ " + a.status) + "\n")
		} else {
			b.WriteString(successStyle.Render("✓ " + a.status) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("[m] move from driver  [b] broadcast pending  [q] quit"))
	return borderStyle.Render(b.String())
}

func (a *App) moveView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stamp a move on "+a.driver) + "\n\n")
	b.WriteString(normalStyle.Render("child:  ") + a.childInput.View() + "\n")
	b.WriteString(normalStyle.Render("parent: ") + a.parentInput.View() + "\n")
	b.WriteString(normalStyle.Render("label:  ") + a.labelInput.View() + "\n\n")
	b.WriteString(dimStyle.Render("[tab] next field  [enter] stamp  [esc] cancel"))
	return borderStyle.Render(b.String())
}

// renderSubtree writes an indented pre-order listing of node's
// descendants; it walks Children directly rather than Tree.Walk so it
// can indent by depth as it goes.
func renderSubtree(b *strings.Builder, tree interface {
	Children(string) []string
}, node string, depth int) {
	children := tree.Children(node)
	sort.Strings(children)
	for _, child := range children {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", depth), child)
		renderSubtree(b, tree, child, depth+1)
	}
}
