package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/celltree/internal/app"
)

func writeFiles(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd)
		assert.Equal(t, "celltree [dir]", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	t.Run("has config flag", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		flag := cmd.PersistentFlags().Lookup("config")
		require.NotNil(t, flag)
		assert.Equal(t, "c", flag.Shorthand)
	})

	t.Run("has watch and display flags", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd.Flags().Lookup("no-watch"))
		assert.NotNil(t, cmd.PersistentFlags().Lookup("hidden"))
		assert.NotNil(t, cmd.PersistentFlags().Lookup("indent"))
		assert.NotNil(t, cmd.PersistentFlags().Lookup("click-to-expand"))
	})

	t.Run("has print subcommand", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		printCmd, _, err := cmd.Find([]string{"print"})
		require.NoError(t, err)
		assert.Contains(t, printCmd.Use, "print")
	})
}

func TestOptions_LoadConfig(t *testing.T) {
	t.Run("flags override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "celltree.yaml")
		require.NoError(t, os.WriteFile(path, []byte("indent: 6\nclick_to_expand: 2\n"), 0o644))
		opts := &options{configPath: path, indent: 3, clickToExpand: -1, showHidden: true, noWatch: true}

		cfg, err := opts.loadConfig()
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.Indent)
		assert.Equal(t, 2, cfg.ClickToExpand)
		assert.True(t, cfg.ShowHidden)
		assert.False(t, cfg.Watch)
	})

	t.Run("invalid override", func(t *testing.T) {
		opts := &options{indent: -1, clickToExpand: 5}
		_, err := opts.loadConfig()
		assert.ErrorIs(t, err, app.ErrInvalidConfig)
	})
}

func TestPrintCommand(t *testing.T) {
	dir := writeFiles(t, "docs/api.md", "docs/deep/x.txt", "main.go", ".env")

	t.Run("prints the whole tree", func(t *testing.T) {
		out, err := runCommand(t, "print", dir)
		require.NoError(t, err)

		assert.Equal(t, strings.Join([]string{
			"▼ docs/",
			"  ▼ deep/",
			"      x.txt",
			"    api.md",
			"  main.go",
		}, "\n")+"\n", out)
	})

	t.Run("depth limits expansion", func(t *testing.T) {
		out, err := runCommand(t, "print", dir, "--depth", "1")
		require.NoError(t, err)

		assert.Equal(t, strings.Join([]string{
			"▼ docs/",
			"  ▶ deep/",
			"    api.md",
			"  main.go",
		}, "\n")+"\n", out)
	})

	t.Run("hidden files and indent", func(t *testing.T) {
		out, err := runCommand(t, "print", dir, "--depth", "0", "--hidden", "--indent", "4")
		require.NoError(t, err)

		assert.Equal(t, "▶ docs/\n  .env\n  main.go\n", out)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := runCommand(t, "print", filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})

	t.Run("pool limit reports an incomplete tree", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "celltree.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pool_limit: 2\n"), 0o644))

		out, err := runCommand(t, "print", dir, "-c", path)

		assert.Error(t, err)
		assert.Contains(t, out, "docs/")
	})
}
