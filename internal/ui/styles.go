package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used to draw the list.
type Styles struct {
	Title     lipgloss.Style
	Counter   lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	Date      lipgloss.Style
	Editing   lipgloss.Style
	Prompt    lipgloss.Style
	Disabled  lipgloss.Style
	Empty     lipgloss.Style
	Help      lipgloss.Style
	ErrorLine lipgloss.Style
}

// DefaultStyles returns the terminal color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242")),
		Date:      lipgloss.NewStyle().Faint(true),
		Editing:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("214")),
		Prompt:    lipgloss.NewStyle().Bold(true),
		Disabled:  lipgloss.NewStyle().Faint(true),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ErrorLine: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Counter:   plain,
		Cursor:    plain,
		Done:      plain,
		Date:      plain,
		Editing:   plain,
		Prompt:    plain,
		Disabled:  plain,
		Empty:     plain,
		Help:      plain,
		ErrorLine: plain,
	}
}
