package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoToInput(t *testing.T) {
	in := NewGoToInput(nil)

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.False(t, in.Focused())
	assert.NotNil(t, in.Init())
}

func TestGoToInput_Typing(t *testing.T) {
	in := NewGoToInput(nil)
	in.Focus()

	for _, r := range "2:255" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "2:255", in.Value())
	assert.Contains(t, in.View(), "Go to:")
}

func TestGoToInput_FocusBlurReset(t *testing.T) {
	in := NewGoToInput(nil)

	in.Focus()
	assert.True(t, in.Focused())
	in.Blur()
	assert.False(t, in.Focused())

	in.SetValue("12")
	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestGoToInput_SetWidth(t *testing.T) {
	in := NewGoToInput(nil)

	in.SetWidth(60)
	assert.Equal(t, 60, in.Width())
	assert.Equal(t, 50, in.textinput.Width)

	in.SetWidth(12)
	assert.Equal(t, 20, in.textinput.Width)
}
