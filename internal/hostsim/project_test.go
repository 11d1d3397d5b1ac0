package hostsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectScriptRoundTrip(t *testing.T) {
	p := NewProject()

	created, err := p.WriteScript("Assets/Scripts/Enemy.cs", "class Enemy {}", false)
	require.NoError(t, err)
	assert.True(t, created)

	content, err := p.ReadScript("Assets/Scripts/Enemy.cs")
	require.NoError(t, err)
	assert.Equal(t, "class Enemy {}", content)

	// The script shows up in the asset database too.
	a, err := p.Asset("Assets/Scripts/Enemy.cs")
	require.NoError(t, err)
	assert.Equal(t, "MonoScript", a.Type)
	assert.Equal(t, "Enemy", a.Name)
}

func TestProjectScriptOverwriteGuard(t *testing.T) {
	p := NewProject()
	_, err := p.WriteScript("Assets/Scripts/A.cs", "v1", false)
	require.NoError(t, err)

	_, err = p.WriteScript("Assets/Scripts/A.cs", "v2", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	created, err := p.WriteScript("Assets/Scripts/A.cs", "v2", true)
	require.NoError(t, err)
	assert.False(t, created)

	content, _ := p.ReadScript("Assets/Scripts/A.cs")
	assert.Equal(t, "v2", content)
}

func TestProjectReadMissingScript(t *testing.T) {
	p := NewProject()
	_, err := p.ReadScript("Assets/Scripts/Nope.cs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script not found: Assets/Scripts/Nope.cs")
}

func TestProjectFindAssets(t *testing.T) {
	p := NewProject()
	p.AddAsset(&Asset{Path: "Assets/Textures/Grass.png", Name: "Grass", Type: "Texture2D", Extension: ".png"})
	p.AddAsset(&Asset{Path: "Assets/Textures/Stone.png", Name: "Stone", Type: "Texture2D", Extension: ".png"})
	p.AddAsset(&Asset{Path: "Assets/Audio/Jump.wav", Name: "Jump", Type: "AudioClip", Extension: ".wav"})
	p.AddAsset(&Asset{Path: "Assets/Readme.txt", Name: "Readme", Type: "TextAsset", Extension: ".txt"})

	tests := []struct {
		name  string
		query AssetQuery
		want  []string
	}{
		{
			"by type",
			AssetQuery{Recursive: true, Type: "Texture2D"},
			[]string{"Assets/Textures/Grass.png", "Assets/Textures/Stone.png"},
		},
		{
			"by wildcard name",
			AssetQuery{Recursive: true, Name: "G*"},
			[]string{"Assets/Textures/Grass.png"},
		},
		{
			"non-recursive top level",
			AssetQuery{},
			[]string{"Assets/Readme.txt"},
		},
		{
			"subdirectory",
			AssetQuery{Path: "Assets/Audio", Recursive: true},
			[]string{"Assets/Audio/Jump.wav"},
		},
		{
			"max results",
			AssetQuery{Recursive: true, MaxResults: 2},
			[]string{"Assets/Audio/Jump.wav", "Assets/Readme.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			for _, a := range p.FindAssets(tt.query) {
				paths = append(paths, a.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestProjectDependencies(t *testing.T) {
	p := NewProject()
	p.AddAsset(&Asset{Path: "Assets/Prefabs/Player.prefab", Dependencies: []string{"Assets/Materials/Player.mat"}})
	p.AddAsset(&Asset{Path: "Assets/Materials/Player.mat", Dependencies: []string{"Assets/Textures/Player.png"}})
	p.AddAsset(&Asset{Path: "Assets/Textures/Player.png"})

	direct, err := p.Dependencies("Assets/Prefabs/Player.prefab", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Materials/Player.mat"}, direct)

	all, err := p.Dependencies("Assets/Prefabs/Player.prefab", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Materials/Player.mat", "Assets/Textures/Player.png"}, all)

	_, err = p.Dependencies("Assets/Missing.mat", false)
	require.Error(t, err)
}

func TestProjectStructureTree(t *testing.T) {
	p := NewProject()
	p.AddAsset(&Asset{Path: "Assets/Scripts/Player.cs"})
	p.AddAsset(&Asset{Path: "Assets/Scripts/Enemy.cs"})
	p.AddAsset(&Asset{Path: "Assets/Textures/Grass.png"})

	tree := p.Structure("Assets", 0, true)
	assert.Equal(t, 3, tree["totalFiles"])

	dirs, ok := tree["directories"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, dirs, 2)
	assert.Equal(t, "Assets/Scripts", dirs[0]["path"])
	assert.Equal(t, 2, dirs[0]["fileCount"])
	assert.Equal(t, []string{"Enemy.cs", "Player.cs"}, dirs[0]["files"])
}

func TestLogBufferRing(t *testing.T) {
	b := NewLogBuffer()
	for i := 0; i < logCapacity+10; i++ {
		b.Append("Log", "line", "")
	}
	assert.Equal(t, logCapacity, b.Len())

	b.Append("Error", "boom", "at Something()")
	errs := b.Tail(0, "Error", true)
	require.Len(t, errs, 1)
	assert.Equal(t, "at Something()", errs[0].StackTrace)

	noStack := b.Tail(0, "Error", false)
	assert.Empty(t, noStack[0].StackTrace)

	tail := b.Tail(5, "All", false)
	assert.Len(t, tail, 5)

	b.Clear()
	assert.Equal(t, 0, b.Len())
}
