package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizagent/internal/quiz"
)

func TestResolveDBPathFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "q.db")
	cmd := &cobra.Command{}
	cmd.Flags().String("db", "", "")
	require.NoError(t, cmd.Flags().Set("db", path))

	got, err := resolveDBPath(cmd)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestReadDocument(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("from stdin"))

	text, err := readDocument(cmd, "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	text, err = readDocument(cmd, path)
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	_, err = readDocument(cmd, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDifficultyFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("difficulty", "", "")

	d, err := difficultyFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, quiz.Difficulty(""), d)

	require.NoError(t, cmd.Flags().Set("difficulty", "Advanced"))
	d, err = difficultyFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, quiz.DifficultyAdvanced, d)

	require.NoError(t, cmd.Flags().Set("difficulty", "expert"))
	_, err = difficultyFlag(cmd)
	assert.Error(t, err)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"}, {"agent", "create"}, {"agent", "list"}, {"agent", "chat"},
		{"generate"}, {"grade"}, {"play"}, {"llm", "stats"}, {"version"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}
