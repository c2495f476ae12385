package course

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visible(n int) SectionInfo {
	return SectionInfo{Number: n, Visible: true, UserVisible: true}
}

func hidden(n int) SectionInfo {
	return SectionInfo{Number: n}
}

func restricted(n int, info string) SectionInfo {
	return SectionInfo{Number: n, Visible: true, AvailableInfo: info, Conditional: true}
}

func numbers(n Neighbors) (prev, next int) {
	prev, next = -1, -1
	if n.Previous != nil {
		prev = n.Previous.Number
	}

	if n.Next != nil {
		next = n.Next.Number
	}

	return prev, next
}

func TestFindNeighbors_AllVisible(t *testing.T) {
	sections := []SectionInfo{visible(0), visible(1), visible(2), visible(3)}

	tests := []struct {
		current  int
		wantPrev int
		wantNext int
	}{
		{0, -1, 1},
		{1, 0, 2},
		{2, 1, 3},
		{3, 2, -1},
	}

	for _, tt := range tests {
		prev, next := numbers(FindNeighbors(sections, tt.current, 3, Viewer{}, DefaultPolicy))
		assert.Equal(t, tt.wantPrev, prev, "previous of %d", tt.current)
		assert.Equal(t, tt.wantNext, next, "next of %d", tt.current)
	}
}

func TestFindNeighbors_SkipsIneligible(t *testing.T) {
	// A visible, B hidden without disclosure, C visible.
	sections := []SectionInfo{visible(0), hidden(1), visible(2)}

	n := FindNeighbors(sections, 2, 2, Viewer{}, DefaultPolicy)
	require.NotNil(t, n.Previous)
	assert.Equal(t, 0, n.Previous.Number)
	assert.Nil(t, n.Next)

	n = FindNeighbors(sections, 0, 2, Viewer{}, DefaultPolicy)
	assert.Nil(t, n.Previous)
	require.NotNil(t, n.Next)
	assert.Equal(t, 2, n.Next.Number)
}

func TestFindNeighbors_NearestWins(t *testing.T) {
	sections := []SectionInfo{visible(0), visible(1), hidden(2), hidden(3), visible(4), visible(5), visible(6)}

	prev, next := numbers(FindNeighbors(sections, 4, 6, Viewer{}, DefaultPolicy))
	assert.Equal(t, 1, prev)
	assert.Equal(t, 5, next)

	prev, next = numbers(FindNeighbors(sections, 1, 6, Viewer{}, DefaultPolicy))
	assert.Equal(t, 0, prev)
	assert.Equal(t, 4, next)
}

func TestFindNeighbors_CanViewHidden(t *testing.T) {
	sections := []SectionInfo{hidden(0), hidden(1), hidden(2)}

	prev, next := numbers(FindNeighbors(sections, 1, 2, Viewer{CanViewHidden: true}, DefaultPolicy))
	assert.Equal(t, 0, prev)
	assert.Equal(t, 2, next)

	prev, next = numbers(FindNeighbors(sections, 1, 2, Viewer{}, DefaultPolicy))
	assert.Equal(t, -1, prev)
	assert.Equal(t, -1, next)
}

func TestFindNeighbors_SkipsMissing(t *testing.T) {
	sections := []SectionInfo{visible(0), {Number: 1, Missing: true}, visible(2)}

	prev, next := numbers(FindNeighbors(sections, 0, 2, Viewer{CanViewHidden: true}, DefaultPolicy))
	assert.Equal(t, -1, prev)
	assert.Equal(t, 2, next)

	prev, _ = numbers(FindNeighbors(sections, 2, 2, Viewer{CanViewHidden: true}, DefaultPolicy))
	assert.Equal(t, 0, prev)
}

func TestFindNeighbors_Disclosure(t *testing.T) {
	sections := []SectionInfo{visible(0), restricted(1, "Available from 1 May"), visible(2)}

	prev, _ := numbers(FindNeighbors(sections, 2, 2, Viewer{}, DefaultPolicy))
	assert.Equal(t, 1, prev)

	prev, _ = numbers(FindNeighbors(sections, 2, 2, Viewer{}, Policy{DiscloseUnavailable: false}))
	assert.Equal(t, 0, prev)
}

func TestFindNeighbors_Bounds(t *testing.T) {
	// Section 3 is stealth: present in the slice but beyond numSections.
	sections := []SectionInfo{visible(0), visible(1), visible(2), visible(3)}

	tests := []struct {
		name     string
		current  int
		wantPrev int
		wantNext int
	}{
		{"last regular section has no next", 2, 1, -1},
		{"negative current has no previous", -1, -1, 0},
		{"far beyond range falls back to last section", 40, 2, -1},
		{"stealth current", 3, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := numbers(FindNeighbors(sections, tt.current, 2, Viewer{}, DefaultPolicy))
			assert.Equal(t, tt.wantPrev, prev)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestFindNeighbors_EmptyAndShortSlices(t *testing.T) {
	n := FindNeighbors(nil, 0, 5, Viewer{CanViewHidden: true}, DefaultPolicy)
	assert.Nil(t, n.Previous)
	assert.Nil(t, n.Next)

	// numSections larger than the slice must not index past its end.
	n = FindNeighbors([]SectionInfo{visible(0), visible(1)}, 0, 5, Viewer{}, DefaultPolicy)
	require.NotNil(t, n.Next)
	assert.Equal(t, 1, n.Next.Number)
}

func TestFindNeighbors_IdempotentAndPure(t *testing.T) {
	name := "Week one"
	sections := []SectionInfo{visible(0), {Number: 1, Name: &name, Visible: true, UserVisible: true}, hidden(2)}
	snapshot := append([]SectionInfo(nil), sections...)

	first := FindNeighbors(sections, 0, 2, Viewer{}, DefaultPolicy)
	second := FindNeighbors(sections, 0, 2, Viewer{}, DefaultPolicy)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("FindNeighbors not idempotent (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(snapshot, sections); diff != "" {
		t.Errorf("FindNeighbors modified its input (-want +got):\n%s", diff)
	}

	// The result is a copy, not an alias into the caller's slice.
	first.Next.Visible = false
	assert.True(t, sections[1].Visible)
}

func TestNewViewer(t *testing.T) {
	collapsed := Course{HiddenSections: false}
	invisible := Course{HiddenSections: true}

	assert.True(t, NewViewer(false, collapsed).CanViewHidden)
	assert.False(t, NewViewer(false, invisible).CanViewHidden)
	assert.True(t, NewViewer(true, invisible).CanViewHidden)
}
