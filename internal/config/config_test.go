package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokount/internal/apperr"
	"tokount/internal/config"
)

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "empty.toml", ""))
	require.NoError(t, err)

	defaults := config.Default()
	assert.Equal(t, defaults.Scan.Workers, cfg.Scan.Workers)
	assert.Equal(t, []string{"node_modules", "vendor", ".git", "dist", "build", "__pycache__"}, cfg.Scan.Exclude)
	assert.Empty(t, cfg.Scan.NotMatch)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.Textfile)

	limit, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Zero(t, limit)
}

// TestLoad_EmptyExcludeReplacesDefault 验证配置文件中的空列表会替换默认排除目录。
func TestLoad_EmptyExcludeReplacesDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "tokount.toml", "[scan]\nexclude = []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Scan.Exclude)
}

func TestDefault_ExcludeIsIndependentCopy(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Scan.Exclude[0] = "changed"
	assert.Equal(t, "node_modules", config.Default().Scan.Exclude[0])
}

func TestLoad_TOMLFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "tokount.toml", `
[scan]
workers = 3
exclude = ["vendor", "node_modules"]
not_match = ["**/*_test.go"]
max_file_size = "2MB"
keep_empty = true

[output]
format = "table"
file = "out/report.txt"
no_color = true

[logging]
level = "debug"
format = "json"

[metrics]
textfile = "tokount.prom"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.Equal(t, []string{"vendor", "node_modules"}, cfg.Scan.Exclude)
	assert.Equal(t, []string{"**/*_test.go"}, cfg.Scan.NotMatch)
	assert.True(t, cfg.Scan.KeepEmpty)
	assert.Equal(t, config.FormatTable, cfg.Output.Format)
	assert.Equal(t, "out/report.txt", cfg.Output.File)
	assert.True(t, cfg.Output.NoColor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "tokount.prom", cfg.Metrics.Textfile)

	limit, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), limit)
}

func TestLoad_YAMLFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "tokount.yaml", "scan:\n  exclude:\n    - dist\noutput:\n  format: yaml\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist"}, cfg.Scan.Exclude)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "tokount.toml", "[scan]\nworkers = 2\n")
	t.Setenv("TOKOUNT_SCAN_WORKERS", "7")
	t.Setenv("TOKOUNT_OUTPUT_FORMAT", "table")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scan.Workers)
	assert.Equal(t, config.FormatTable, cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgs, apperr.KindOf(err))
}

func TestLoad_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		content string
		want    error
	}{
		"negative workers": {content: "[scan]\nworkers = -1\n", want: config.ErrInvalidWorkers},
		"bad size":         {content: "[scan]\nmax_file_size = \"lots\"\n", want: config.ErrInvalidMaxFileSize},
		"bad format":       {content: "[output]\nformat = \"xml\"\n", want: config.ErrInvalidFormat},
		"bad level":        {content: "[logging]\nlevel = \"chatty\"\n", want: config.ErrInvalidLogLevel},
		"bad log format":   {content: "[logging]\nformat = \"logfmt\"\n", want: config.ErrInvalidLogFormat},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load(writeConfig(t, "tokount.toml", tc.content))
			require.NoError(t, err)

			require.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

// TestValidate_AfterOverride 验证被覆盖后的非法取值不再导致失败。
func TestValidate_AfterOverride(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "tokount.toml", "[output]\nformat = \"xml\"\n"))
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidFormat)

	cfg.Output.Format = config.FormatJSON
	require.NoError(t, cfg.Validate())
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	size, err := config.ParseSize("512KiB")
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), size)

	size, err = config.ParseSize("1024")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), size)

	_, err = config.ParseSize("-3MB")
	require.ErrorIs(t, err, config.ErrInvalidMaxFileSize)
}

func TestWriteDefault_RoundTripsThroughLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", config.DefaultFileName)
	require.NoError(t, config.WriteDefault(path, false))

	var decoded config.Config
	_, err := toml.DecodeFile(path, &decoded)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), decoded)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, config.DefaultFileName, "# mine\n")

	err := config.WriteDefault(path, false)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgs, apperr.KindOf(err))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "# mine\n", string(content))

	require.NoError(t, config.WriteDefault(path, true))
	content, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "[scan]")
}
