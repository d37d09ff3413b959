package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treekit/treekit/core"
	"github.com/treekit/treekit/tree"
)

// sprite is a stateful test node persisting a single speed value.
type sprite struct {
	core.NodeBase
	Speed float64
}

func (s *sprite) SaveState() map[string]any {
	return map[string]any{"speed": s.Speed}
}

func (s *sprite) LoadState(state map[string]any) error {
	if v, ok := state["speed"].(float64); ok {
		s.Speed = v
	}
	return nil
}

// group is a plain structural node.
type group struct{ core.NodeBase }

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	tag, err := r.Register(func() core.Node { return &sprite{} })
	require.NoError(t, err)
	require.Equal(t, "sprite", tag)
	_, err = r.Register(func() core.Node { return &group{} })
	require.NoError(t, err)
	return r
}

func testTemplate() *Template {
	return &Template{
		Type: "group",
		Name: "Main",
		Children: []*Template{
			{Type: "sprite", Name: "Player", State: map[string]any{"speed": 2.5}},
			{Type: "group", Name: "Level", Children: []*Template{
				{Type: "sprite", Name: "Enemy", State: map[string]any{"speed": 1.5}},
			}},
		},
	}
}

func TestRegistryRejectsDuplicateTag(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Register(func() core.Node { return &sprite{} })
	assert.ErrorIs(t, err, ErrDuplicateType)
	assert.ErrorIs(t, r.RegisterNamed("group", func() core.Node { return &group{} }), ErrDuplicateType)
}

func TestInstantiateBuildsDetachedSubtree(t *testing.T) {
	r := testRegistry(t)

	root, err := r.Instantiate(testTemplate())
	require.NoError(t, err)

	rb := root.Base()
	assert.Equal(t, "Main", rb.Name())
	assert.False(t, rb.Attached())
	require.Equal(t, 2, rb.NumChildren())

	player, ok := rb.ChildByName("Player").(*sprite)
	require.True(t, ok)
	assert.Equal(t, 2.5, player.Speed)

	level := rb.ChildByName("Level")
	require.NotNil(t, level)
	enemy, ok := level.Base().ChildByName("Enemy").(*sprite)
	require.True(t, ok)
	assert.Equal(t, 1.5, enemy.Speed)

	// The result plugs straight into a tree.
	_, err = tree.New(root)
	assert.NoError(t, err)
}

func TestInstantiateUnknownType(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Instantiate(&Template{Type: "Ghost", Name: "G"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestInstantiateStateOnStatelessType(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Instantiate(&Template{
		Type: "group", Name: "G", State: map[string]any{"speed": 1.0},
	})
	assert.Error(t, err)
}

func TestSnapshotRoundtrip(t *testing.T) {
	r := testRegistry(t)
	root, err := r.Instantiate(testTemplate())
	require.NoError(t, err)
	tr, err := tree.New(root)
	require.NoError(t, err)

	got, err := Snapshot(tr, tr.Root())
	require.NoError(t, err)

	assert.Equal(t, testTemplate(), got)
	assert.Equal(t, 4, got.NumNodes())
}

func TestSnapshotOfSubtree(t *testing.T) {
	r := testRegistry(t)
	root, err := r.Instantiate(testTemplate())
	require.NoError(t, err)
	tr, err := tree.New(root)
	require.NoError(t, err)

	level := root.Base().ChildByName("Level")
	got, err := Snapshot(tr, level.Base().Handle())
	require.NoError(t, err)

	assert.Equal(t, "Level", got.Name)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Enemy", got.Children[0].Name)
}

func TestSnapshotAbsentHandle(t *testing.T) {
	r := testRegistry(t)
	root, err := r.Instantiate(testTemplate())
	require.NoError(t, err)
	tr, err := tree.New(root)
	require.NoError(t, err)

	_, err = Snapshot(tr, core.Handle{})
	assert.ErrorIs(t, err, core.ErrNodeAbsent)
}

func TestTOMLRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTOML(&buf, testTemplate()))

	got, err := DecodeTOML(&buf)
	require.NoError(t, err)
	assert.Equal(t, testTemplate(), got)
}

func TestYAMLRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, testTemplate()))

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, testTemplate(), got)
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		path := filepath.Join(t.TempDir(), "scene"+ext)
		require.NoError(t, Save(path, testTemplate()))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, testTemplate(), got, ext)

		// No temp files are left behind.
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}
}

func TestSaveUnsupportedExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "scene.json"), testTemplate())
	assert.Error(t, err)

	_, err = Load("scene.json")
	assert.Error(t, err)
}

func TestHashStableAndStructural(t *testing.T) {
	a := testTemplate()
	b := testTemplate()
	assert.Equal(t, Hash(a), Hash(b))

	// State does not contribute to the hash.
	b.Children[0].State["speed"] = 99.0
	assert.Equal(t, Hash(a), Hash(b))

	// Names do.
	b.Children[0].Name = "Player2"
	assert.NotEqual(t, Hash(a), Hash(b))

	// So does shape.
	c := testTemplate()
	c.Children = c.Children[:1]
	assert.NotEqual(t, Hash(a), Hash(c))
}
