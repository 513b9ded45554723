package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"llmchat/character"
)

// openCharacterPicker shows the persona selector. Custom characters come
// first, then the built-in catalog.
func (a *AppView) openCharacterPicker() {
	a.characterList = append(a.chat.CustomCharacters(), character.Builtin()...)
	a.selectedCharIdx = 0
	a.charFilterInput.Reset()
	a.charFilterInput.Focus()
	a.showCharacterPicker = true
}

func (a AppView) pickerCharacters() []character.Character {
	query := a.charFilterInput.Value()
	if query == "" {
		return a.characterList
	}
	return character.Search(query, a.characterList)
}

func (a AppView) updateCharacterPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showCharacterPicker = false
		a.charFilterInput.Blur()
		return a, nil

	case "enter":
		list := a.pickerCharacters()
		if a.selectedCharIdx < len(list) {
			selected := list[a.selectedCharIdx]
			name := selected.Name
			if selected.ID != "" {
				name = selected.ID
			}
			a.chat.SelectCharacter(name)
		}
		a.showCharacterPicker = false
		a.charFilterInput.Blur()
		return a, nil

	case "up", "ctrl+k":
		if a.selectedCharIdx > 0 {
			a.selectedCharIdx--
		}
		return a, nil

	case "down", "ctrl+j":
		if a.selectedCharIdx < len(a.pickerCharacters())-1 {
			a.selectedCharIdx++
		}
		return a, nil

	case "ctrl+x":
		// Clear the persona selection
		a.chat.SelectCharacter("")
		a.showCharacterPicker = false
		a.charFilterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.charFilterInput, cmd = a.charFilterInput.Update(msg)
	if a.selectedCharIdx >= len(a.pickerCharacters()) {
		a.selectedCharIdx = 0
	}
	return a, cmd
}

func (a AppView) renderCharacterPicker() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Select Persona"))
	b.WriteString("\n\n")
	b.WriteString(a.charFilterInput.View())
	b.WriteString("\n\n")

	list := a.pickerCharacters()
	selectedName := a.chat.SelectedCharacter()

	maxRows := a.height - 10
	if maxRows < 1 {
		maxRows = 1
	}

	for i, c := range list {
		if i >= maxRows {
			b.WriteString(DimStyle.Render(fmt.Sprintf("  ... (%d more)", len(list)-maxRows)))
			b.WriteString("\n")
			break
		}

		line := fmt.Sprintf("%s %s - %s", c.Icon, c.Name, c.Description)
		line = runewidth.Truncate(line, a.width-6, "...")

		cursor := "  "
		style := lipgloss.NewStyle()
		if i == a.selectedCharIdx {
			cursor = "> "
			style = SelectedStyle
		}

		active := ""
		if c.Name == selectedName || (c.ID != "" && c.ID == selectedName) {
			active = UserStyle.Render(" *")
		}

		b.WriteString(cursor + style.Render(line) + active + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Up/Down Navigate  Enter Select  Ctrl+X Clear  Esc Close"))

	return b.String()
}
