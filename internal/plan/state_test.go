package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTransitionsDoNotMutate(t *testing.T) {
	s0 := NewState()
	assert.True(t, s0.Loading(Home))
	assert.True(t, s0.Loading(Gym))
	assert.Equal(t, "", s0.FirstDay(Gym))

	s1 := s0.WithGenerated(Gym, twoDayPlan)
	s2 := s1.WithParsed(Gym, Parse(twoDayPlan))

	_, ok := s0.Generated(Gym)
	assert.False(t, ok, "receiver must not change")
	assert.Nil(t, s1.Plan(Gym))

	text, ok := s2.Generated(Gym)
	assert.True(t, ok)
	assert.Equal(t, twoDayPlan, text)
	assert.Len(t, s2.Plan(Gym), 2)
	assert.False(t, s2.Loading(Gym))
	assert.True(t, s2.Loading(Home))
	assert.Equal(t, "Day 1", s2.FirstDay(Gym))

	s3 := s2.WithLoading(Home, false)
	assert.False(t, s3.Loading(Home))
	assert.True(t, s2.Loading(Home))
}

func TestZeroStateIsUsable(t *testing.T) {
	var s State
	s = s.WithParsed(Home, []DayPlan{{Day: "Day 4"}})
	assert.Equal(t, "Day 4", s.FirstDay(Home))
	assert.False(t, s.Loading(Home))
}
