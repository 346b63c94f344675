package domain

// SelectionKind tags the active selection
type SelectionKind string

const (
	SelectionNone     SelectionKind = "none"
	SelectionSingle   SelectionKind = "single"
	SelectionSummary  SelectionKind = "summary"
	SelectionDetailed SelectionKind = "detailed"
)

// Selection is what the presentation layer is currently showing
type Selection interface {
	Kind() SelectionKind
}

// NoSelection means nothing is displayed
type NoSelection struct{}

func (NoSelection) Kind() SelectionKind { return SelectionNone }

// SingleOrderView shows the items of one order
type SingleOrderView struct {
	Order Order
}

func (SingleOrderView) Kind() SelectionKind { return SelectionSingle }

// SummarySelection shows a summary report
type SummarySelection struct {
	Report SummaryReport
}

func (SummarySelection) Kind() SelectionKind { return SelectionSummary }

// DetailedSelection shows a detailed report
type DetailedSelection struct {
	Report DetailedReport
}

func (DetailedSelection) Kind() SelectionKind { return SelectionDetailed }

// SelectionState is a single slot. Showing a selection discards the previous one.
type SelectionState struct {
	current Selection
}

// NewSelectionState returns a state with nothing selected
func NewSelectionState() *SelectionState {
	return &SelectionState{current: NoSelection{}}
}

// Current returns the active selection, never nil
func (s *SelectionState) Current() Selection {
	if s.current == nil {
		return NoSelection{}
	}
	return s.current
}

// Show replaces the active selection. A nil selection clears it.
func (s *SelectionState) Show(sel Selection) {
	if sel == nil {
		sel = NoSelection{}
	}
	s.current = sel
}

// Dismiss clears the active selection
func (s *SelectionState) Dismiss() {
	s.current = NoSelection{}
}
