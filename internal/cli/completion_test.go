package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCompletionRoot creates a bare root command so generated scripts don't
// depend on what else is registered.
func newCompletionRoot() *cobra.Command {
	return &cobra.Command{
		Use:   "sentinel",
		Short: "Live health dashboard for a monitoring backend",
	}
}

func TestCompletionBashGeneration(t *testing.T) {
	cmd := newCompletionRoot()

	var buf bytes.Buffer
	require.NoError(t, cmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "# bash completion for sentinel")
	assert.Contains(t, output, "__sentinel_debug")
	assert.Contains(t, output, "complete -o default -F __start_sentinel sentinel")
}

func TestCompletionZshGeneration(t *testing.T) {
	cmd := newCompletionRoot()

	var buf bytes.Buffer
	require.NoError(t, cmd.GenZshCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "#compdef sentinel")
	assert.Contains(t, output, "_sentinel()")
}

func TestCompletionFishGeneration(t *testing.T) {
	cmd := newCompletionRoot()

	var buf bytes.Buffer
	require.NoError(t, cmd.GenFishCompletion(&buf, true))
	output := buf.String()

	assert.Contains(t, output, "fish completion for sentinel")
	assert.Contains(t, output, "complete -c sentinel")
}

func TestCompletionPowershellGeneration(t *testing.T) {
	cmd := newCompletionRoot()

	var buf bytes.Buffer
	require.NoError(t, cmd.GenPowerShellCompletion(&buf))
	output := buf.String()

	assert.Contains(t, strings.ToLower(output), "powershell completion")
	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))
	output := buf.String()

	// Cobra completes dynamically through the binary; commands with local
	// flags still get a generated function.
	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_sentinel")
	assert.Contains(t, output, "_sentinel_root_command")
	assert.Contains(t, output, "_sentinel_dashboard()")
	assert.Contains(t, output, "_sentinel_watch()")
	assert.Contains(t, output, "_sentinel_snapshot()")
	assert.Contains(t, output, "_sentinel_completion()")
}

func TestCompletionBashSyntaxValid(t *testing.T) {
	cmd := newCompletionRoot()
	cmd.AddCommand(&cobra.Command{Use: "watch", Short: "Print status lines"})
	cmd.AddCommand(&cobra.Command{Use: "snapshot", Short: "Sync once"})

	var buf bytes.Buffer
	require.NoError(t, cmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Equal(t, strings.Count(output, "{"), strings.Count(output, "}"), "braces should be balanced")
	assert.Contains(t, output, "__start_sentinel()")
	assert.Contains(t, output, "complete -o default -F __start_sentinel sentinel")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
}
