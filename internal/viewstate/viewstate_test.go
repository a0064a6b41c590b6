package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyStackCurrentIsRoot(t *testing.T) {
	var s Stack

	assert.Equal(t, Root(), s.Current())
	assert.False(t, s.CanGoBack())
	assert.Equal(t, 0, s.Depth())
}

func TestPopEmptyStackReturnsNil(t *testing.T) {
	var s Stack

	assert.Nil(t, s.Pop())
	// Still at the root afterwards.
	assert.Equal(t, Root(), s.Current())
}

func TestPushPopSequence(t *testing.T) {
	var s Stack

	s.Push(ViewMonthDays, Context{Month: 0})
	s.Push(ViewHours, Context{Month: 0, Day: 15})
	s.Push(ViewMinutes, Context{Month: 0, Day: 15, Hour24: 9})

	require.Equal(t, 3, s.Depth())
	assert.Equal(t, ViewMinutes, s.Current().Name)

	// First pop lands on hours.
	f := s.Pop()
	require.NotNil(t, f)
	assert.Equal(t, ViewHours, f.Name)
	assert.Equal(t, 15, f.Context.Day)

	// Second pop lands on monthDays.
	f = s.Pop()
	require.NotNil(t, f)
	assert.Equal(t, ViewMonthDays, f.Name)

	// Third pop empties the stack: the implicit root is returned and
	// back-navigation is exhausted.
	f = s.Pop()
	require.NotNil(t, f)
	assert.Equal(t, ViewYear, f.Name)
	assert.False(t, s.CanGoBack())

	// Fourth pop is the no-op nil.
	assert.Nil(t, s.Pop())
}

func TestCurrentDoesNotMutate(t *testing.T) {
	var s Stack
	s.Push(ViewMonthDays, Context{Month: 5})

	_ = s.Current()
	_ = s.Current()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, ViewMonthDays, s.Current().Name)
}

func TestReset(t *testing.T) {
	var s Stack
	s.Push(ViewMonthDays, Context{})
	s.Push(ViewHours, Context{})

	s.Reset()
	assert.False(t, s.CanGoBack())
	assert.Equal(t, Root(), s.Current())
}
