package hostsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneCreateAndGet(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")

	obj, err := s.Create("Player", 0)
	require.NoError(t, err)
	assert.Greater(t, obj.ID, 1000)
	assert.True(t, obj.Active)
	assert.Equal(t, []string{"Transform"}, obj.Components)
	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 1}, obj.Transform.Scale)
	assert.True(t, s.Dirty)

	got, err := s.Get(obj.ID)
	require.NoError(t, err)
	assert.Same(t, obj, got)
}

func TestSceneCreateUnknownParent(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")
	_, err := s.Create("Orphan", 99999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent object not found")
}

func TestSceneDeleteRecursive(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")
	parent, _ := s.Create("Parent", 0)
	child, _ := s.Create("Child", parent.ID)
	_, _ = s.Create("Grandchild", child.ID)

	removed, err := s.Delete(parent.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, s.Count())
}

func TestSceneDeleteReparentsChildren(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")
	parent, _ := s.Create("Parent", 0)
	child, _ := s.Create("Child", parent.ID)

	removed, err := s.Delete(parent.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	got, err := s.Get(child.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ParentID)
}

func TestSceneFind(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")
	player, _ := s.Create("Player", 0)
	player.Tag = "Player"
	player.Components = append(player.Components, "Rigidbody")
	enemy, _ := s.Create("Enemy", 0)
	enemy.Active = false
	_, _ = s.Create("PlayerSpawn", 0)

	tests := []struct {
		name  string
		query FindQuery
		want  []int
	}{
		{"by substring", FindQuery{Name: "Player"}, []int{player.ID, player.ID + 2}},
		{"exact match", FindQuery{Name: "Player", ExactMatch: true}, []int{player.ID}},
		{"by tag", FindQuery{Tag: "Player"}, []int{player.ID}},
		{"by component", FindQuery{ComponentType: "Rigidbody"}, []int{player.ID}},
		{"active only", FindQuery{ActiveOnly: true}, []int{player.ID, player.ID + 2}},
		{"max results", FindQuery{MaxResults: 1}, []int{player.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []int
			for _, obj := range s.Find(tt.query) {
				ids = append(ids, obj.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSceneHierarchyNesting(t *testing.T) {
	s := NewScene("Assets/Scenes/Test.unity")
	root, _ := s.Create("Canvas", 0)
	_, _ = s.Create("Button", root.ID)

	h := s.Hierarchy(false, false)
	require.Len(t, h, 1)
	assert.Equal(t, "Canvas", h[0]["name"])

	children, ok := h[0]["children"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "Button", children[0]["name"])
}
