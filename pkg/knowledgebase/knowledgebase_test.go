package knowledgebase

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

func TestParseElmJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/proj/elm.json", []byte(`{
		"type": "application",
		"source-directories": ["src", "generated"],
		"elm-version": "0.19.1",
		"dependencies": {},
		"test-dependencies": {}
	}`), 0o644)

	p, err := Parse(fs, "/proj")
	require.NoError(t, err)
	require.Equal(t, []string{"/proj/src", "/proj/generated"}, p.SourceDirs)
	assert.True(t, p.ContainsSourceFile("/proj/src/Main.elm"))
	assert.False(t, p.ContainsSourceFile("/proj/elm-stuff/Main.elm"))
}

func TestModulePathToName(t *testing.T) {
	assert.Equal(t, "Json.Decode.Extra", ModulePathToName("Json/Decode/Extra.elm"))
}

func TestKnowledgeBaseExports(t *testing.T) {
	kb := New()
	_, ok := kb.Exports("Unknown")
	assert.False(t, ok, "expected unknown module to report ok=false")

	kb.Update("Main", []names.ExportedName{{Kind: names.ExportedValue, Name: names.NewName("main", names.Value)}})
	exported, ok := kb.Exports("Main")
	require.True(t, ok)
	assert.Len(t, exported, 1)

	kb.Forget("Main")
	_, ok = kb.Exports("Main")
	assert.False(t, ok, "expected Main to be forgotten")
}
