// Package ui provides terminal user interface components for taskify.
package ui

import (
	"fmt"
	"strings"

	"taskify/internal/category"
	"taskify/internal/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CategoryPane handles the category list display and interactions.
type CategoryPane struct {
	categories []category.Category
	cursor     int
	focused    bool
	width      int
	height     int
	adding     bool
	input      textinput.Model
	repo       *category.Repo
	styles     *Styles

	// Key bindings
	keys      CategoryKeyMap
	inputKeys InputKeyMap
}

// NewCategoryPane creates a new category pane.
func NewCategoryPane(repo *category.Repo, styles *Styles) *CategoryPane {
	return NewCategoryPaneWithKeys(repo, styles, &config.KeysConfig{})
}

// NewCategoryPaneWithKeys creates a new category pane with custom key bindings.
func NewCategoryPaneWithKeys(repo *category.Repo, styles *Styles, keyCfg *config.KeysConfig) *CategoryPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Category name"
	ti.CharLimit = 60
	ti.Width = 30

	return &CategoryPane{
		categories: []category.Category{},
		cursor:     0,
		focused:    false,
		input:      ti,
		repo:       repo,
		styles:     styles,
		keys:       NewCategoryKeyMap(keyCfg),
		inputKeys:  NewInputKeyMap(keyCfg),
	}
}

// LoadCategoriesCmd returns a command that loads categories asynchronously.
func (p *CategoryPane) LoadCategoriesCmd() tea.Cmd {
	return loadCategoriesCmd(p.repo)
}

// setCategories updates the list and adjusts cursor bounds.
func (p *CategoryPane) setCategories(categories []category.Category) {
	p.categories = categories
	if p.cursor >= len(p.categories) {
		p.cursor = max(0, len(p.categories)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *CategoryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *CategoryPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether we're in add mode.
func (p *CategoryPane) IsAdding() bool {
	return p.adding
}

// Selected returns the category under the cursor, or nil.
func (p *CategoryPane) Selected() *category.Category {
	if len(p.categories) == 0 || p.cursor < 0 || p.cursor >= len(p.categories) {
		return nil
	}
	c := p.categories[p.cursor]
	return &c
}

// Update handles messages for the category pane.
func (p *CategoryPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Handle async messages first
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		if msg.err == nil {
			p.setCategories(msg.categories)
		}
		return nil

	case categoryAddedMsg:
		if msg.err == nil {
			return p.LoadCategoriesCmd()
		}
		return nil

	case categoryDeletedMsg:
		return p.LoadCategoriesCmd()

	// Task mutations shift per-category counts, so refresh on them too.
	case taskAddedMsg, taskToggledMsg, taskDeletedMsg, completedClearedMsg:
		return p.LoadCategoriesCmd()
	}

	// Add mode: route keys to the name input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				name := strings.TrimSpace(p.input.Value())
				p.adding = false
				p.input.Reset()
				if name != "" {
					return addCategoryCmd(p.repo, name, "", "")
				}
				return nil

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.categories) > 0 {
				p.cursor = min(p.cursor+1, len(p.categories)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.categories) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.categories) > 0 {
				p.cursor = len(p.categories) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Delete):
			if c := p.Selected(); c != nil {
				return deleteCategoryCmd(p.repo, c.ID)
			}
		}
	}

	return nil
}

// View renders the category pane.
func (p *CategoryPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("CATEGORIES")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.categories) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No categories. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxRows := p.height - 5
		if maxRows < 3 {
			maxRows = 5
		}

		startIdx := 0
		if p.cursor >= maxRows {
			startIdx = p.cursor - maxRows + 1
		}

		for i, c := range p.categories {
			if i < startIdx || i >= startIdx+maxRows {
				continue
			}

			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
			count := p.styles.CategoryCountStyle.Render(fmt.Sprintf("%d", c.TaskCount))

			nameWidth := p.width - 12
			if nameWidth < 5 {
				nameWidth = 5
			}
			name := runewidth.Truncate(c.Name, nameWidth, "..")

			if i == p.cursor && p.focused && !p.adding {
				line := fmt.Sprintf("%s %s  %s", dot, name, count)
				b.WriteString(p.styles.TaskSelectedStyle.Render(" " + line + " "))
			} else {
				styled := p.styles.CategoryNameStyle.Render(name)
				b.WriteString(fmt.Sprintf(" %s %s  %s", dot, styled, count))
			}
			b.WriteString("\n")
		}
	}

	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}
