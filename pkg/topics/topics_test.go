// pkg/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (in-memory filesystems)
// PURPOSE: Test topic discovery, lookup, rendering and the help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sidechan/pkg/errors"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"traffic.txt":              {Data: []byte("Information about traffic")},
		"architecture.md":          {Data: []byte("# Architecture\n\nSystem architecture details")},
		"config.txxt":              {Data: []byte("Configuration Guide\n==================")},
		"ignore.json":              {Data: []byte("This should be ignored")},
		"option-verbose.txt":       {Data: []byte("Verbose help")},
		"advanced/plugins.txt":     {Data: []byte("Plugin help")},
		"advanced/deeper/notes.md": {Data: []byte("Notes")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm, err := New(sampleFS(), Options{})
		require.NoError(t, err)

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"traffic", true, "Information about traffic"},
			{"architecture", true, "# Architecture\n\nSystem architecture details"},
			{"config", false, ""}, // .txxt not in defaults
			{"ignore", false, ""},
			{"plugins", true, "Plugin help"},
			{"notes", true, "Notes"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm, err := New(sampleFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil source", func(t *testing.T) {
		tm, err := New(nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm, err := New(sampleFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"architecture", "architecture", true},
		{"option-verbose", "option-verbose", true},
		{"verbose", "option-verbose", true},
		{"--verbose", "option-verbose", true},
		{"-verbose", "option-verbose", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestListTopicsSorted(t *testing.T) {
	tm, err := New(sampleFS(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"architecture", "notes", "option-verbose", "plugins", "traffic"}, tm.ListTopics())
}

func TestShow(t *testing.T) {
	tm, err := New(sampleFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tm.Show(&buf, "traffic"))
	assert.Equal(t, "Information about traffic", buf.String())

	err = tm.Show(&buf, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestShowWithRenderer(t *testing.T) {
	var formats []string
	tm, err := New(sampleFS(), Options{Renderer: RendererFunc(func(content, format string) string {
		formats = append(formats, format)
		return strings.ToUpper(content)
	})})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tm.Show(&buf, "architecture"))
	assert.True(t, strings.HasPrefix(buf.String(), "# ARCHITECTURE"))
	assert.Equal(t, []string{".md"}, formats)
}

func TestWriteIndex(t *testing.T) {
	tm, err := New(sampleFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "sidechan")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  architecture\n")
	assert.Contains(t, out, "Option topics:\n  --verbose\n")
	assert.Contains(t, out, "Use 'sidechan help <topic>'")

	empty, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.WriteIndex(&buf, "sidechan")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestBuiltinTopics(t *testing.T) {
	tm, err := Builtin(Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "modes", "option-traffic", "themes"}, tm.ListTopics())

	topic, ok := tm.GetTopic("--traffic")
	require.True(t, ok)
	assert.Contains(t, topic.Content, "summary")
}

func TestGlamourRenderer(t *testing.T) {
	r := NewGlamourRenderer(true, 60)
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Title\n\nSome *body* text.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")

	light := NewGlamourRenderer(false, 0)
	assert.Equal(t, "light", light.Style)
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	tm, err := New(fstest.MapFS{
		"traffic.txt": {Data: []byte("TRAFFIC MODES\nHow traffic is shown.")},
	}, Options{})
	require.NoError(t, err)
	tm.Install(rootCmd)
	return rootCmd, &out
}

func TestInstall(t *testing.T) {
	rootCmd, _ := newRoot(t)
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		rootCmd, out := newRoot(t)
		rootCmd.SetArgs([]string{"help", "traffic"})
		require.NoError(t, rootCmd.Execute())
		assert.True(t, strings.HasPrefix(out.String(), "TRAFFIC MODES"))
	})

	t.Run("topic index", func(t *testing.T) {
		rootCmd, out := newRoot(t)
		rootCmd.SetArgs([]string{"help", "topics"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "  traffic\n")
		assert.Contains(t, out.String(), "testapp help <topic>")
	})

	t.Run("command falls back to cobra help", func(t *testing.T) {
		rootCmd, out := newRoot(t)
		rootCmd.SetArgs([]string{"help", "serve"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Serve something")
	})
}
