package cli

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/astaxie/beego/logs"

	"github.com/syncopasoft/webserver/internal/config"
	"github.com/syncopasoft/webserver/internal/httpd"
	"github.com/syncopasoft/webserver/internal/task"
	"github.com/syncopasoft/webserver/internal/worker"
)

// ServeConfig captures everything the accept loop needs.
type ServeConfig struct {
	PoolSize    int
	MaxRequests int
	Root        string
	ServerName  string
	Log         *logs.BeeLogger
}

// Run parses args, serves exactly the requested number of connections and
// reports on them. A malformed command line prints the usage text to stdout
// and is not treated as an error.
func Run(args []string, stdout io.Writer) error {
	parsed, err := config.ParseArgs(args)
	if err != nil {
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprint(stdout, config.Usage)
			return nil
		}
		return err
	}

	settings, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	log, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer log.Close()

	addr := settings.Address(parsed.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	log.Info("listening on %s, root %s, %d workers, %d requests", ln.Addr(), settings.Root, parsed.PoolSize, parsed.MaxRequests)

	report, err := Serve(ln, ServeConfig{
		PoolSize:    parsed.PoolSize,
		MaxRequests: parsed.MaxRequests,
		Root:        settings.Root,
		ServerName:  settings.ServerName,
		Log:         log,
	})
	if err != nil {
		return err
	}
	return handleReportOutput(report, settings, stdout)
}

// Serve accepts exactly cfg.MaxRequests connections from ln, counting failed
// accepts, and hands each one to a worker pool. It closes ln, waits for every
// queued connection to be served and returns the finalized report.
func Serve(ln net.Listener, cfg ServeConfig) (*httpd.Report, error) {
	log := cfg.Log
	if log == nil {
		log = logs.GetBeeLogger()
	}
	pool, err := worker.New(cfg.PoolSize, log)
	if err != nil {
		ln.Close()
		return nil, err
	}
	report := httpd.NewReport()
	handler := httpd.NewHandler(httpd.Options{
		Root:       cfg.Root,
		ServerName: cfg.ServerName,
		Log:        log,
		Report:     report,
	})

	var id uint64
	for i := 0; i < cfg.MaxRequests; i++ {
		conn, err := ln.Accept()
		if err != nil {
			log.Error("accept: %v", err)
			if errors.Is(err, net.ErrClosed) {
				break
			}
			continue
		}
		id++
		t := task.Task{ID: id, Conn: conn, AcceptedAt: time.Now()}
		if err := pool.Submit(handler.Job(t)); err != nil {
			log.Error("conn %d: %v", id, err)
			conn.Close()
		}
	}

	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn("close listener: %v", err)
	}
	pool.Shutdown()
	report.Finalize()
	log.Info("served %d connections in %s", report.RequestCount(), report.Duration())
	return report, nil
}

func newLogger(s config.Settings) (*logs.BeeLogger, error) {
	level, err := s.Level()
	if err != nil {
		return nil, err
	}
	log := logs.NewLogger()
	if err := log.SetLogger(logs.AdapterConsole); err != nil {
		return nil, err
	}
	if s.LogFile != "" {
		if err := log.SetLogger(logs.AdapterFile, fmt.Sprintf(`{"filename":%q}`, s.LogFile)); err != nil {
			return nil, fmt.Errorf("log file %s: %w", s.LogFile, err)
		}
	}
	log.SetLevel(level)
	return log, nil
}
