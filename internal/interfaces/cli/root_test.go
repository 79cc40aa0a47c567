package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhycool/visualizations/internal/config"
	"github.com/solhycool/visualizations/internal/testutil"
)

// writeConfig writes a minimal config file for resultsDir and templatePath.
func writeConfig(t *testing.T, resultsDir, templatePath string) string {
	t.Helper()
	content := "results:\n" +
		"  dir: " + resultsDir + "\n" +
		"diagram:\n" +
		"  template_path: " + templatePath + "\n" +
		"log:\n" +
		"  level: error\n" +
		"  format: console\n"
	path := filepath.Join(t.TempDir(), "solhycool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "solhycool", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"watch", "aggregate", "render", "export", "summary", "events", "version"} {
		assert.True(t, names[name], "missing subcommand %q", name)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	configFlag := pf.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue)

	outputFlag := pf.Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, OutputText, outputFlag.DefValue)

	verboseFlag := pf.Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	assert.NotNil(t, pf.Lookup("log-level"))
	assert.NotNil(t, pf.Lookup("no-color"))
}

func TestPipelineCommands_OverrideFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"watch", "render"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		for _, flag := range []string{"results", "template", "output-dir", "dark"} {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s --%s", name, flag)
		}
	}
	for _, name := range []string{"aggregate", "export", "summary"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup("results"), "%s --results", name)
	}
}

func TestExecute_Help(t *testing.T) {
	_, err := executeCommand(t, "--help")
	assert.NoError(t, err)
}

func TestExecute_UnknownSubcommand(t *testing.T) {
	_, err := executeCommand(t, "unknownsubcommand")
	assert.Error(t, err)
}

func TestExecute_InvalidOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "--output", "yaml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestExecute_MissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestVersionCmd_JSON(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "template.svg")
	out, err := executeCommand(t, "--config", cfgPath, "-o", "json", "version")
	require.NoError(t, err)

	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

func TestGetCLIContext(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		cmd := &cobra.Command{}
		cmd.SetContext(context.Background())
		_, err := GetCLIContext(cmd)
		assert.Error(t, err)
	})

	t.Run("present", func(t *testing.T) {
		cmd := &cobra.Command{}
		want := &CLIContext{OutputFormat: OutputJSON, Logger: testutil.NewMockLogger()}
		cmd.SetContext(context.WithValue(context.Background(), cliContextKey{}, want))
		got, err := GetCLIContext(cmd)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})
}

type tableData struct{}

func (tableData) TableHeaders() []string { return []string{"A", "BB"} }
func (tableData) TableRows() [][]string  { return [][]string{{"xxx", "y"}} }
func (tableData) String() string         { return "as text" }

func TestPrintResult_Formats(t *testing.T) {
	run := func(format string) string {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetContext(context.WithValue(context.Background(), cliContextKey{}, &CLIContext{OutputFormat: format}))
		require.NoError(t, PrintResult(cmd, tableData{}))
		return out.String()
	}

	assert.Equal(t, "as text\n", run(OutputText))
	assert.Equal(t, "A    BB\n---  --\nxxx  y \n", run(OutputTable))
	assert.Equal(t, "{}\n", run(OutputJSON))
}

func TestPrintResult_WithoutContextFallsBackToJSON(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, PrintResult(cmd, map[string]int{"points": 2}))
	assert.JSONEq(t, `{"points":2}`, out.String())
}

func TestPrintErrorAndSuccess(t *testing.T) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	PrintError(cmd, nil)
	assert.Empty(t, errOut.String())

	PrintError(cmd, assert.AnError)
	assert.Contains(t, errOut.String(), assert.AnError.Error())

	PrintSuccess(cmd, "done")
	assert.Contains(t, out.String(), "done")
}

func TestFormatTable(t *testing.T) {
	assert.Empty(t, FormatTable(nil, nil))

	out := FormatTable([]string{"CONDITION", "N"}, [][]string{{"c1", "10"}, {"longer-condition"}})
	assert.Equal(t,
		"CONDITION         N \n"+
			"----------------  --\n"+
			"c1                10\n"+
			"longer-condition    \n", out)
}

//Personal.AI order the ending
