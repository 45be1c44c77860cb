package rulebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
# comments are allowed
{
  fallback: Tell me more.
  rules: [
    {
      name: broad
      triggers: ["he"]
      responses: ["broad reply"]
    }
    {
      name: narrow
      triggers: ["hello"]
      responses: ["narrow reply"]
    }
  ]
}
`

func TestParse_HJSON(t *testing.T) {
	b, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Tell me more.", b.Fallback)
	require.Len(t, b.Rules, 2)
	assert.Equal(t, "broad", b.Rules[0].Name)
	assert.Equal(t, []string{"hello"}, b.Rules[1].Triggers)
}

func TestParse_DocumentedFormat(t *testing.T) {
	b, err := Parse([]byte(`{
  fallback: "Keep talking."
  rules: [
    {
      name: greeting
      triggers: ["hello", "hi"]
      responses: ["Hey!"]
    }
    { name: "help", triggers: ["help"], responses: ["Ask away."] }
  ]
}`))
	require.NoError(t, err)

	assert.Equal(t, "Keep talking.", b.Fallback)
	assert.Equal(t, []responder.Rule{
		{Name: "greeting", Triggers: []string{"hello", "hi"}, Responses: []string{"Hey!"}},
		{Name: "help", Triggers: []string{"help"}, Responses: []string{"Ask away."}},
	}, b.Rules)
}

func TestParse_QuotelessValueRunsToEndOfLine(t *testing.T) {
	_, err := Parse([]byte(`{ rules: [ { name: greeting, triggers: ["hi"], responses: ["Hey!"] } ] }`))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{ rules: [ `))
	assert.Error(t, err)
}

func TestOpen_FilePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hjson")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "broad reply", r.Respond("hello there"))
	assert.Equal(t, "Tell me more.", r.Respond("xyz"))

	shadows := responder.Shadows(r.Table())
	require.Len(t, shadows, 1)
	assert.Equal(t, "narrow", shadows[0].Rule)
}

func TestOpen_EmptyPathUsesDefaults(t *testing.T) {
	r, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, responder.DefaultFallback, r.Fallback())
	assert.Equal(t, len(responder.DefaultRules()), r.Table().Len())
}

func TestOpen_MissingFallbackUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rules":[{"triggers":["x"],"responses":["y"]}]}`), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, responder.DefaultFallback, r.Respond("nothing"))
}

func TestOpen_InvalidRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hjson")
	require.NoError(t, os.WriteFile(path, []byte(`{ rules: [ { name: "empty", triggers: ["x"], responses: [] } ] }`), 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, responder.ErrNoResponses)
	assert.Contains(t, err.Error(), path)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.hjson"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncode_LoadsBack(t *testing.T) {
	data, err := Encode(Default())
	require.NoError(t, err)

	b, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), b)
}
