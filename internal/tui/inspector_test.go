package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/spec"
	"github.com/kingrea/metadspy/symbol"
)

const inspectDoc = `
modules:
  - name: qa
    type: Predict
    use: sigs:QA
    config:
      temperature: 0.5
      stop: "###"
  - name: agent
    type: ReAct
    use: sigs:Agent
    tools: ["tools:search"]
    max_iters: 4
  - name: broken
    type: CodeAct
    use: sigs:Code
    tools: ["tools:missing"]
`

type searchTool struct{}

func newBuilder(t *testing.T) *spec.Builder {
	t.Helper()
	reg := symbol.NewRegistry()
	require.NoError(t, reg.Register("tools", "search", &searchTool{}))
	return spec.NewBuilder(spec.Env{Resolver: reg, Runtime: runtime.Describer{}})
}

func inspectEntries(t *testing.T) []Entry {
	t.Helper()
	doc, err := spec.ParseDocument([]byte(inspectDoc))
	require.NoError(t, err)
	return Inspect(doc, newBuilder(t))
}

func TestInspect(t *testing.T) {
	entries := inspectEntries(t)
	require.Len(t, entries, 3)

	qa := entries[0]
	assert.Equal(t, "qa", qa.Name)
	assert.Equal(t, spec.KindPredict, qa.Kind)
	assert.NoError(t, qa.Err)
	assert.Equal(t, []Keyword{
		{Name: "temperature", Value: "0.5"},
		{Name: "stop", Value: `["###"]`},
	}, qa.Keywords)

	agent := entries[1]
	assert.NoError(t, agent.Err)
	assert.Equal(t, []Keyword{
		{Name: "tools", Value: "[*tui.searchTool]"},
		{Name: "max_iters", Value: "4"},
	}, agent.Keywords)

	broken := entries[2]
	require.Error(t, broken.Err)
	var resErr *symbol.ResolutionError
	assert.True(t, errors.As(broken.Err, &resErr))
	assert.Empty(t, broken.Keywords)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "<nil>"},
		{"string", "a b", `"a b"`},
		{"int", 3, "3"},
		{"float", 0.25, "0.25"},
		{"type token", runtime.TypeStr, "str"},
		{"map", map[string]any{"b": 1, "a": "x"}, `{a: "x", b: 1}`},
		{"object", &searchTool{}, "*tui.searchTool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestInspectorNavigation(t *testing.T) {
	m := NewInspector("agents.yaml", inspectEntries(t))
	assert.Nil(t, m.Init())

	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(*Inspector)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "qa", selected.Name)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(*Inspector)
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "agent", selected.Name)

	view := m.View()
	assert.Contains(t, view, "agents.yaml")
	assert.Contains(t, view, "max_iters")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(*Inspector)
	assert.Contains(t, m.View(), "build failed")
}

func TestInspectorQuit(t *testing.T) {
	m := NewInspector("doc", inspectEntries(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInspectorEmpty(t *testing.T) {
	m := NewInspector("empty.yaml", nil)
	view := m.View()
	assert.True(t, strings.Contains(view, "No modules"))
	_, ok := m.Selected()
	assert.False(t, ok)
}
