package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/nathfavour/blubot/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLUBOT_DATA_DIR", filepath.Join(home, ".blubot"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = rootCmd.PersistentFlags().Set("rules", "")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAskCommand(t *testing.T) {
	out, err := run(t, "ask", "--explain", "Who", "created", "you?")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `# rule "creator" (#1) via "who created you"`, lines[0])
	assert.Contains(t, responder.DefaultRules()[0].Responses, lines[1])
}

type failingRecorder struct{}

func (failingRecorder) Record(string, responder.Match) error {
	return errors.New("database is locked")
}

func TestAnswer_RecordFailureStillReplies(t *testing.T) {
	var buf bytes.Buffer
	answer(&buf, responder.NewDefault(), failingRecorder{}, "xyz", true)
	assert.Equal(t, "# fallback\n"+responder.DefaultFallback+"\n", buf.String())
}

func TestVaultSetCommand(t *testing.T) {
	openVault = func(path string) *vault.Vault { return vault.New(nil, path) }
	t.Cleanup(func() { openVault = vault.Open })

	out, err := run(t, "vault", "set", "TELEGRAM_TOKEN_BLU", "123456:abcdefxyz")
	require.NoError(t, err)
	assert.Equal(t, "Secret 'TELEGRAM_TOKEN_BLU' stored.\n", out)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	v := vault.New(nil, filepath.Join(home, ".blubot", "secrets.json"))
	got, err := v.Get("TELEGRAM_TOKEN_BLU")
	require.NoError(t, err)
	assert.Equal(t, "123456:abcdefxyz", got)
}

func TestDocumentedCommandsExist(t *testing.T) {
	for _, path := range [][]string{
		{"chat"}, {"ask"}, {"serve"},
		{"bot", "add"}, {"bot", "remove"}, {"bot", "list"}, {"bot", "run"},
		{"vault", "set"}, {"vault", "list"},
		{"rules", "list"}, {"rules", "lint"}, {"rules", "export"},
		{"stats"}, {"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name(), path)
	}
}

func TestRulesLintCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.hjson")
	require.NoError(t, os.WriteFile(path, []byte(`{
  rules: [
    { name: "a", triggers: ["he"], responses: ["A"] }
    { name: "b", triggers: ["hello"], responses: ["B"] }
  ]
}`), 0644))

	out, err := run(t, "rules", "lint", "--rules", path)
	require.ErrorIs(t, err, errShadowed)
	assert.Contains(t, out, `rule "b" trigger "hello" is shadowed by earlier rule "a" trigger "he" (rule can never match)`)
}

func TestLintRules_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, lintRules(&buf, ""))
	assert.Equal(t, "ok: 8 rules, no shadowed triggers\n", buf.String())
}

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	printRules(&buf, responder.NewDefault())

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[1], "1   creator"))
	assert.Contains(t, lines[5], `"hello", "hi", "hie", "hey"`)
	assert.Equal(t, "fallback: "+responder.DefaultFallback, lines[9])
}

func TestPrintHits(t *testing.T) {
	var buf bytes.Buffer
	printHits(&buf, nil)
	assert.Equal(t, "No matches recorded yet.\n", buf.String())

	buf.Reset()
	printHits(&buf, []stats.Hit{{Rule: "greeting", Surface: "tui", Count: 3, LastSeen: time.Now()}})
	assert.Contains(t, buf.String(), "greeting")
	assert.Contains(t, buf.String(), "tui")
}
