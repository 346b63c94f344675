package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionState(t *testing.T) {
	state := NewSelectionState()
	assert.Equal(t, SelectionNone, state.Current().Kind())

	state.Show(SingleOrderView{Order: Order{ID: "1"}})
	assert.Equal(t, SelectionSingle, state.Current().Kind())

	state.Show(SummarySelection{Report: SummaryReport{Day: Sunday}})
	current, ok := state.Current().(SummarySelection)
	assert.True(t, ok)
	assert.Equal(t, Sunday, current.Report.Day)

	state.Show(DetailedSelection{Report: DetailedReport{Day: Monday}})
	assert.Equal(t, SelectionDetailed, state.Current().Kind())

	state.Dismiss()
	assert.Equal(t, SelectionNone, state.Current().Kind())

	state.Show(nil)
	assert.Equal(t, SelectionNone, state.Current().Kind())
}

func TestSelectionStateZeroValue(t *testing.T) {
	var state SelectionState
	assert.Equal(t, SelectionNone, state.Current().Kind())
}
