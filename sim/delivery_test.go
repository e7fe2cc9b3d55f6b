package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLead(n int) func() int { return func() int { return n } }

func TestDeliveryScheduler_PopsOnDueDayOnly(t *testing.T) {
	s := NewDeliveryScheduler()
	got := s.Schedule([]RestockRequest{{Drug: "a"}}, 4, fixedLead(2))

	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].DueDay)
	assert.Empty(t, s.PopDue(5))
	assert.Equal(t, []RestockRequest{{Drug: "a"}}, s.PopDue(6))
	assert.Equal(t, 0, s.Pending())
}

func TestDeliveryScheduler_TiesKeepSchedulingOrder(t *testing.T) {
	s := NewDeliveryScheduler()
	s.Schedule([]RestockRequest{{Drug: "c"}, {Drug: "a"}}, 0, fixedLead(3))
	s.Schedule([]RestockRequest{{Drug: "b"}}, 1, fixedLead(2))

	assert.Equal(t, []RestockRequest{{Drug: "c"}, {Drug: "a"}, {Drug: "b"}}, s.PopDue(3))
}

func TestDeliveryScheduler_OrdersByDueDay(t *testing.T) {
	s := NewDeliveryScheduler()
	leads := []int{3, 1, 2}
	i := 0
	s.Schedule([]RestockRequest{{Drug: "x"}, {Drug: "y"}, {Drug: "z"}}, 10, func() int {
		l := leads[i]
		i++
		return l
	})

	assert.Equal(t, 3, s.Pending())

	var order []string
	for day := 11; day <= 13; day++ {
		for _, r := range s.PopDue(day) {
			order = append(order, r.Drug)
		}
	}
	assert.Equal(t, []string{"y", "z", "x"}, order)
}

func TestDeliveryScheduler_OverdueDeliveryPanics(t *testing.T) {
	s := NewDeliveryScheduler()
	s.Schedule([]RestockRequest{{Drug: "a"}}, 0, fixedLead(1))

	assert.Panics(t, func() { s.PopDue(2) })
}

func TestDeliveryScheduler_EmptyPopsNothing(t *testing.T) {
	s := NewDeliveryScheduler()
	assert.Empty(t, s.PopDue(0))
	assert.Equal(t, 0, s.Pending())
}
