package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderInProgress, true},
		{OrderPending, OrderDelivered, true},
		{OrderInProgress, OrderDelivered, true},
		{OrderPending, OrderPending, true},
		{OrderDelivered, OrderDelivered, true},
		{OrderInProgress, OrderPending, false},
		{OrderDelivered, OrderPending, false},
		{OrderDelivered, OrderInProgress, false},
		{OrderPending, "Expédiée", false},
		{"", OrderPending, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%q -> %q", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(OrderPending))
	assert.True(t, ValidStatus(OrderInProgress))
	assert.True(t, ValidStatus(OrderDelivered))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(string(RoleCustomer)))
	assert.True(t, ValidRole(string(RoleSeller)))
	assert.True(t, ValidRole(string(RoleAdmin)))
	assert.False(t, ValidRole("superadmin"))
}
