package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoldOut(t *testing.T) {
	e := Event{TicketQuantity: 100, TicketsSold: 99}
	assert.False(t, e.SoldOut())

	e.TicketsSold = 100
	assert.True(t, e.SoldOut())

	// unlimited events never sell out
	unlimited := Event{TicketQuantity: 0, TicketsSold: 5000}
	assert.False(t, unlimited.SoldOut())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleDJ))
	assert.True(t, ValidRole(RoleOrganizer))
	assert.True(t, ValidRole(RoleViewer))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}
