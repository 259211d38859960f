package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// Styles holds the lipgloss styles used in text output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Action renders a drop action label.
func (s *Styles) Action(a core.DropAction) string {
	switch a {
	case core.DropTable:
		return s.Error.Render(a.String())
	case core.DropView:
		return s.Warning.Render(a.String())
	default:
		return s.Success.Render(a.String())
	}
}

// PlanStatus renders a plan status label.
func (s *Styles) PlanStatus(st state.PlanStatus) string {
	switch st {
	case state.PlanStatusApplied:
		return s.Success.Render(string(st))
	case state.PlanStatusFailed:
		return s.Error.Render(string(st))
	case state.PlanStatusSkipped:
		return s.Muted.Render(string(st))
	default:
		return s.Info.Render(string(st))
	}
}

// RunStatus renders a run status label.
func (s *Styles) RunStatus(st state.RunStatus) string {
	switch st {
	case state.RunStatusCompleted:
		return s.Success.Render(string(st))
	case state.RunStatusFailed:
		return s.Error.Render(string(st))
	default:
		return s.Warning.Render(string(st))
	}
}
