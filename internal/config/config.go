package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	beeconfig "github.com/astaxie/beego/config"
	"github.com/astaxie/beego/logs"

	"github.com/syncopasoft/webserver/internal/httpd"
	"github.com/syncopasoft/webserver/internal/worker"
)

// EnvSettings names the environment variable holding the settings file path.
const EnvSettings = "WEBSERVER_CONFIG"

// Usage is printed when the command line cannot be parsed.
const Usage = "Usage: webserver <port> <pool-size> <max-requests>\n"

// ErrUsage reports a command line that does not match Usage.
var ErrUsage = errors.New("invalid command line")

// Args holds the positional command line arguments.
type Args struct {
	Port        int
	PoolSize    int
	MaxRequests int
}

// ParseArgs parses port, pool size and request count. Every value must be
// written in canonical decimal form: no sign, no leading zeros, no padding.
func ParseArgs(args []string) (Args, error) {
	if len(args) != 3 {
		return Args{}, fmt.Errorf("%w: expected 3 arguments, got %d", ErrUsage, len(args))
	}
	port, err := parseCanonical("port", args[0], 1, 65535)
	if err != nil {
		return Args{}, err
	}
	poolSize, err := parseCanonical("pool-size", args[1], 1, worker.MaxPoolSize)
	if err != nil {
		return Args{}, err
	}
	maxRequests, err := parseCanonical("max-requests", args[2], 1, 0)
	if err != nil {
		return Args{}, err
	}
	return Args{Port: port, PoolSize: poolSize, MaxRequests: maxRequests}, nil
}

// parseCanonical parses s as an integer in [min, max]. max <= 0 means
// unbounded.
func parseCanonical(name, s string, min, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, fmt.Errorf("%w: %s %q is not a decimal number", ErrUsage, name, s)
	}
	if n < min || (max > 0 && n > max) {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrUsage, name, n)
	}
	return n, nil
}

// Settings are the optional knobs read from the settings file.
type Settings struct {
	Host       string
	Root       string
	ServerName string
	LogLevel   string
	LogFile    string
	ReportCSV  string
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Root:       ".",
		ServerName: httpd.DefaultServerName,
		LogLevel:   "info",
	}
}

var logLevels = map[string]int{
	"emergency": logs.LevelEmergency,
	"alert":     logs.LevelAlert,
	"critical":  logs.LevelCritical,
	"error":     logs.LevelError,
	"warn":      logs.LevelWarn,
	"warning":   logs.LevelWarn,
	"notice":    logs.LevelNotice,
	"info":      logs.LevelInfo,
	"debug":     logs.LevelDebug,
}

// LoadSettings reads the INI file at path. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	cnf, err := beeconfig.NewConfig("ini", path)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return fromConfiger(cnf), nil
}

// ParseSettings reads INI data already in memory.
func ParseSettings(data []byte) (Settings, error) {
	cnf, err := beeconfig.NewConfigData("ini", data)
	if err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return fromConfiger(cnf), nil
}

// LoadFromEnv loads the file named by EnvSettings, if any.
func LoadFromEnv() (Settings, error) {
	return LoadSettings(strings.TrimSpace(os.Getenv(EnvSettings)))
}

func fromConfiger(cnf beeconfig.Configer) Settings {
	def := DefaultSettings()
	return Settings{
		Host:       strings.TrimSpace(cnf.DefaultString("host", def.Host)),
		Root:       strings.TrimSpace(cnf.DefaultString("root", def.Root)),
		ServerName: strings.TrimSpace(cnf.DefaultString("server_name", def.ServerName)),
		LogLevel:   strings.ToLower(strings.TrimSpace(cnf.DefaultString("log_level", def.LogLevel))),
		LogFile:    strings.TrimSpace(cnf.String("log_file")),
		ReportCSV:  strings.TrimSpace(cnf.String("report_csv")),
	}
}

// Level maps LogLevel to a beego log level.
func (s Settings) Level() (int, error) {
	level, ok := logLevels[s.LogLevel]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	return level, nil
}

// Validate ensures the settings are usable.
func (s Settings) Validate() error {
	if _, err := s.Level(); err != nil {
		return err
	}
	if strings.TrimSpace(s.ServerName) == "" {
		return errors.New("server name is empty")
	}
	info, err := os.Stat(s.Root)
	if err != nil {
		return fmt.Errorf("document root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document root %s is not a directory", s.Root)
	}
	return nil
}

// Address returns the listen address for port.
func (s Settings) Address(port int) string {
	return fmt.Sprintf("%s:%d", s.Host, port)
}
