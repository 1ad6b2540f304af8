//go:build unit

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"hotel-concierge/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	units, err := Load("")
	require.NoError(t, err)

	counts := map[inventory.Kind]int{}
	for _, u := range units {
		counts[u.Kind()]++
	}
	assert.Equal(t, 15, counts[inventory.KindRoom])
	assert.Equal(t, 6, counts[inventory.KindTable])
	assert.Equal(t, 7, counts[inventory.KindMenuItem])

	var pepperoni inventory.MenuItem
	for _, u := range units {
		if m, ok := u.(inventory.MenuItem); ok && m.ID() == "pepperoni_pizza" {
			pepperoni = m
		}
	}
	price, err := pepperoni.UnitPrice([][]string{{"Extra Cheese"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1700), price.Minor())
	assert.Contains(t, pepperoni.Aliases(), "پیتزا پپرونی")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	content := `
rooms:
  - {id: "A1", floor: 4, class: Double, rate: 9900}
menu:
  - key: tea
    name: Tea
    price: 300
    available: false
    portions: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	units, err := Load(path)
	require.NoError(t, err)
	require.Len(t, units, 2)

	room, ok := units[0].(inventory.Room)
	require.True(t, ok)
	assert.Equal(t, inventory.ClassDouble, room.Class())
	assert.Equal(t, 4, room.Floor())

	tea, ok := units[1].(inventory.MenuItem)
	require.True(t, ok)
	assert.False(t, tea.IsAvailable())
	n, limited := tea.Portions()
	assert.True(t, limited)
	assert.Equal(t, 5, n)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty",
			content: "rooms: []",
			wantErr: "no inventory defined",
		},
		{
			name:    "duplicate room",
			content: "rooms:\n  - {id: \"1\", class: single}\n  - {id: \"1\", class: double}",
			wantErr: "duplicate room id",
		},
		{
			name:    "unknown class",
			content: "rooms:\n  - {id: \"1\", class: suite}",
			wantErr: "class \"suite\"",
		},
		{
			name:    "menu without name",
			content: "menu:\n  - {key: tea, price: 100}",
			wantErr: "name is required",
		},
		{
			name:    "zero capacity table",
			content: "tables:\n  - {id: T1, capacity: 0}",
			wantErr: "table T1",
		},
		{
			name:    "malformed yaml",
			content: "rooms: [",
			wantErr: "parse inventory seed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read inventory seed")
}
