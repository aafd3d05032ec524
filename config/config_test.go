package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rapidmidiex/rmxpiano/config"
	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty document keeps the defaults", func(t *testing.T) {
		got, err := config.Parse("")
		require.NoError(t, err)
		require.Equal(t, config.Default(), got)
	})

	t.Run("overrides only the given fields", func(t *testing.T) {
		got, err := config.Parse(`
[keyboard]
start = "C3"
end = "84"
width = 960.0

[sizing]
gutter_ratio = 0.03

[sizing.accidental]
width_ratio = 0.6

[sizing.offsets]
"C#" = 0.6
E = 2.1
`)
		require.NoError(t, err)

		want := layout.DefaultConfig()
		want.GutterRatio = 0.03
		want.Accidental.WidthRatio = 0.6
		want.NoteOffsets["Db"] = 0.6
		want.NoteOffsets["E"] = 2.1

		require.Equal(t, layout.Range{Start: 48, End: 84}, got.Range)
		require.Equal(t, 960.0, got.Width)
		require.Equal(t, want, got.Sizing)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := config.Parse("[sizing]\ngutter = 0.1\n")
		require.True(t, rmxerr.Is(err, rmxerr.InvalidConfig), err)
		require.Contains(t, err.Error(), "sizing.gutter")
	})

	t.Run("rejects unknown note symbols", func(t *testing.T) {
		_, err := config.Parse("[sizing.offsets]\nH = 1.0\n")
		require.True(t, rmxerr.Is(err, rmxerr.UnknownNoteSymbol), err)
	})

	t.Run("rejects a reversed range", func(t *testing.T) {
		_, err := config.Parse("[keyboard]\nstart = \"C5\"\nend = \"C4\"\n")
		require.True(t, rmxerr.Is(err, rmxerr.InvalidRange), err)
	})

	t.Run("rejects unparsable notes", func(t *testing.T) {
		_, err := config.Parse("[keyboard]\nstart = \"middle C\"\n")
		require.True(t, rmxerr.Is(err, rmxerr.InvalidNote), err)
	})

	t.Run("rejects unusable sizing", func(t *testing.T) {
		_, err := config.Parse("[sizing]\nkey_width_to_height_ratio = 0.0\n")
		require.True(t, rmxerr.Is(err, rmxerr.InvalidConfig), err)
	})

	t.Run("disabled keyboard", func(t *testing.T) {
		got, err := config.Parse("[keyboard]\ndisabled = true\n")
		require.NoError(t, err)
		require.True(t, got.Disabled)
		require.False(t, config.Default().Disabled)
	})

	t.Run("rejects widths that are not finite", func(t *testing.T) {
		for _, w := range []string{"nan", "inf", "-inf"} {
			_, err := config.Parse("[keyboard]\nwidth = " + w + "\n")
			require.True(t, rmxerr.Is(err, rmxerr.InvalidConfig), err)
		}
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		_, err := config.Parse("[keyboard\n")
		require.True(t, rmxerr.Is(err, rmxerr.InvalidConfig), err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing default file means defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		got, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, config.Default(), got)
	})

	t.Run("reads the default location", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "rmxpiano"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rmxpiano", "config.toml"), []byte("[keyboard]\nend = \"B4\"\n"), 0o644))

		path, err := config.Path()
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "rmxpiano", "config.toml"), path)

		got, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, layout.Range{Start: 60, End: 71}, got.Range)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.True(t, rmxerr.Is(err, rmxerr.InvalidConfig), err)
	})
}
