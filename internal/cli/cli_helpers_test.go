package cli_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rshade/vlist/internal/cli"
	"github.com/rshade/vlist/internal/config"
)

// setupCLITest isolates global config state and returns the project root the
// commands resolve (its .vlist/ directory does not exist yet).
func setupCLITest(t *testing.T) string {
	t.Helper()
	projectRoot := t.TempDir()
	t.Setenv("VLIST_HOME", t.TempDir())
	t.Setenv("VLIST_PROJECT_DIR", projectRoot)
	t.Setenv("VLIST_LOG_LEVEL", "error")
	t.Setenv("VLIST_LOG_FORMAT", "")
	t.Setenv("VLIST_LOG_FILE", "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return projectRoot
}

// executeCmd runs the root command with args and stdin, returning stdout.
func executeCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// lines returns n newline-terminated items "item 0".."item n-1".
func lines(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "item %d\n", i)
	}
	return sb.String()
}
