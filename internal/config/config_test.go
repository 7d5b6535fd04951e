package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/astaxie/beego/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"8080", "4", "10"})
	require.NoError(t, err)
	assert.Equal(t, Args{Port: 8080, PoolSize: 4, MaxRequests: 10}, args)

	args, err = ParseArgs([]string{"65535", "200", "1"})
	require.NoError(t, err)
	assert.Equal(t, Args{Port: 65535, PoolSize: 200, MaxRequests: 1}, args)
}

func TestParseArgsRejectsInvalidInput(t *testing.T) {
	tests := map[string][]string{
		"no arguments":      nil,
		"too few":           {"8080", "4"},
		"too many":          {"8080", "4", "10", "extra"},
		"port zero":         {"0", "4", "10"},
		"port too large":    {"65536", "4", "10"},
		"leading zero":      {"08080", "4", "10"},
		"plus sign":         {"+8080", "4", "10"},
		"trailing junk":     {"8080x", "4", "10"},
		"padded":            {" 8080", "4", "10"},
		"pool zero":         {"8080", "0", "10"},
		"pool over ceiling": {"8080", "201", "10"},
		"negative requests": {"8080", "4", "-1"},
		"zero requests":     {"8080", "4", "0"},
		"non numeric":       {"http", "4", "10"},
		"empty request arg": {"8080", "4", ""},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArgs(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUsage), "error %v should wrap ErrUsage", err)
		})
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	require.NoError(t, s.Validate())
	assert.Equal(t, ":8080", s.Address(8080))
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webserver.conf")
	contents := "host = 127.0.0.1\n" +
		"root = " + dir + "\n" +
		"server_name = static/2.0\n" +
		"log_level = DEBUG\n" +
		"log_file = " + filepath.Join(dir, "server.log") + "\n" +
		"report_csv = " + filepath.Join(dir, "report.csv") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", s.Host)
	assert.Equal(t, dir, s.Root)
	assert.Equal(t, "static/2.0", s.ServerName)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, filepath.Join(dir, "server.log"), s.LogFile)
	assert.Equal(t, filepath.Join(dir, "report.csv"), s.ReportCSV)
	assert.Equal(t, "127.0.0.1:80", s.Address(80))

	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, logs.LevelDebug, level)
	require.NoError(t, s.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.conf")
	require.NoError(t, os.WriteFile(path, []byte("server_name = from-env\n"), 0o644))
	t.Setenv(EnvSettings, path)

	s, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.ServerName)
	assert.Equal(t, ".", s.Root)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.conf"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	s, err := ParseSettings([]byte("log_level = chatty\n"))
	require.NoError(t, err)
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Root = file
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Root = filepath.Join(t.TempDir(), "gone")
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.ServerName = " "
	assert.Error(t, s.Validate())
}
