package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_AddKeepsOrderAndDuplicates(t *testing.T) {
	var r Registry
	r.Add("buy milk")
	r.Add("walk dog")
	r.Add("buy milk")

	assert.Equal(t, []string{"buy milk", "walk dog", "buy milk"}, r.List())
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_ListIsACopy(t *testing.T) {
	var r Registry
	r.Add("a")

	got := r.List()
	got[0] = "mutated"
	r.Add("b")

	assert.Equal(t, []string{"mutated"}, got)
	assert.Equal(t, []string{"a", "b"}, r.List())
}

func TestRegistry_Remove(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []string
		remove string
		found  bool
		want   []string
	}{
		{"single", []string{"a", "b", "c"}, "b", true, []string{"a", "c"}},
		{"first of duplicates", []string{"x", "a", "x"}, "x", true, []string{"a", "x"}},
		{"absent", []string{"a"}, "z", false, []string{"a"}},
		{"empty", nil, "a", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Registry
			for _, task := range tt.tasks {
				r.Add(task)
			}
			assert.Equal(t, tt.found, r.Remove(tt.remove))
			assert.Equal(t, tt.want, r.List())
		})
	}
}

func TestLinks(t *testing.T) {
	l := NewLinks()
	l.Set("buy milk", "id-1")
	l.Set("walk dog", "id-2")
	l.Set("buy milk", "id-3")

	id, ok := l.Get("buy milk")
	assert.True(t, ok)
	assert.Equal(t, "id-3", id, "later write wins")
	assert.Equal(t, 2, l.Len())

	snap := l.Snapshot()
	l.Delete("walk dog")
	_, ok = l.Get("walk dog")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"buy milk": "id-3", "walk dog": "id-2"}, snap)

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Snapshot())
}

func TestSettings_Configured(t *testing.T) {
	assert.False(t, Settings{}.Configured())
	assert.False(t, Settings{Credential: "tok"}.Configured())
	assert.False(t, Settings{CollectionID: "db"}.Configured())
	assert.True(t, Settings{Credential: "tok", CollectionID: "db"}.Configured())
}
