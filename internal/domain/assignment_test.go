package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoOrderStore() *OrderStore {
	return NewOrderStore([]Order{
		{ID: "1", DocumentNumber: "1001", CustomerName: "Alpha", Items: []OrderItem{item("A", 3)}},
		{ID: "2", DocumentNumber: "1002", CustomerName: "Beta", Items: []OrderItem{item("B", 5)}},
	})
}

func TestAssignmentMapAssign(t *testing.T) {
	store := twoOrderStore()

	tests := []struct {
		name    string
		orderID string
		day     DeliveryDay
		wantErr error
	}{
		{name: "Assign known order", orderID: "1", day: Sunday},
		{name: "Invalid day", orderID: "1", day: DeliveryDay("friday"), wantErr: ErrInvalidDeliveryDay},
		{name: "Unknown order", orderID: "99", day: Monday, wantErr: ErrUnknownOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := NewAssignmentMap()
			next, err := original.Assign(store, tt.orderID, tt.day)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, next.Len())
				return
			}

			require.NoError(t, err)
			day, ok := next.Get(tt.orderID)
			assert.True(t, ok)
			assert.Equal(t, tt.day, day)
			assert.Equal(t, 0, original.Len())
		})
	}
}

func TestAssignmentMapReassign(t *testing.T) {
	store := twoOrderStore()

	m, err := NewAssignmentMap().Assign(store, "1", Sunday)
	require.NoError(t, err)

	same, err := m.Assign(store, "1", Sunday)
	require.NoError(t, err)
	assert.Equal(t, m.OrdersForDay(store, Sunday), same.OrdersForDay(store, Sunday))
	assert.Equal(t, 1, same.Len())

	moved, err := m.Assign(store, "1", Tuesday)
	require.NoError(t, err)
	assert.Empty(t, moved.OrdersForDay(store, Sunday))
	require.Len(t, moved.OrdersForDay(store, Tuesday), 1)
	assert.Equal(t, "1", moved.OrdersForDay(store, Tuesday)[0].ID)

	day, _ := m.Get("1")
	assert.Equal(t, Sunday, day)
}

func TestAssignmentMapZeroValue(t *testing.T) {
	var m AssignmentMap
	_, ok := m.Get("1")
	assert.False(t, ok)

	next, err := m.Assign(twoOrderStore(), "2", Monday)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Len())
}

func TestAssignmentMapOrdersForDayKeepsStoreOrder(t *testing.T) {
	store := twoOrderStore()
	m := NewAssignmentMap()
	m, _ = m.Assign(store, "2", Wednesday)
	m, _ = m.Assign(store, "1", Wednesday)

	orders := m.OrdersForDay(store, Wednesday)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].ID)
	assert.Equal(t, "2", orders[1].ID)
}

func TestAssignmentMapCountByDay(t *testing.T) {
	store := twoOrderStore()
	m := NewAssignmentMap()
	m, _ = m.Assign(store, "1", Sunday)
	m, _ = m.Assign(store, "2", Sunday)

	counts := m.CountByDay()
	assert.Len(t, counts, 5)
	assert.Equal(t, 2, counts[Sunday])
	assert.Equal(t, 0, counts[Thursday])
}
