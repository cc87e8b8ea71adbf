// Clock service

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"

	"example.com/clockservice/base/logbase"
	basetimebase "example.com/clockservice/base/timebase"

	"example.com/clockservice/benchmark"

	"example.com/clockservice/core/client"
	coreclock "example.com/clockservice/core/clock"
	"example.com/clockservice/core/config"
	"example.com/clockservice/core/format"
	"example.com/clockservice/core/scan"
	"example.com/clockservice/core/server"
	"example.com/clockservice/core/timebase"
	"example.com/clockservice/core/zone"

	"example.com/clockservice/driver/clock"
	"example.com/clockservice/driver/dateparse"
	"example.com/clockservice/driver/strftime"
	drvzone "example.com/clockservice/driver/zone"
)

const (
	toolTimeout = 2 * time.Second

	logMaxBackups = 3
	logMaxAgeDays = 28
)

var (
	log *zap.Logger
)

func initLogger(verbose bool, file logbase.FileConfig) {
	var err error
	log, err = logbase.NewLogger(verbose, file)
	if err != nil {
		panic(err)
	}
}

func runMonitor(log *zap.Logger, addr string) {
	if addr == "" {
		select {}
	}
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.String("file", configFile), zap.Error(err))
	}
	return cfg
}

func logFileConfig(cfg config.Config) logbase.FileConfig {
	return logbase.FileConfig{
		Filename:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAgeDays: logMaxAgeDays,
	}
}

// newSystemClock returns the system clock, corrected against the
// configured NTP server if there is one.
func newSystemClock(ctx context.Context, cfg config.Config) basetimebase.SystemClock {
	lclk := &clock.SystemClock{Log: log}
	if cfg.NTPServer == "" {
		return lclk
	}
	nclk := &clock.NTPClock{
		Log:          log,
		Clock:        lclk,
		Server:       cfg.NTPServer,
		SyncInterval: time.Duration(cfg.NTPSyncInterval),
	}
	go nclk.Run(ctx)
	return nclk
}

func newDispatcher(cfg config.Config) *coreclock.Dispatcher {
	env := drvzone.NewEnv(log)
	guard := &zone.Guard{
		Log:         log,
		Ambient:     env,
		PerCallZone: cfg.PerCallZone(),
	}
	return &coreclock.Dispatcher{
		Log: log,
		Formatter: &format.Formatter{
			Log:   log,
			Guard: guard,
			Converter: &drvzone.Converter{
				Zone:        env,
				PerCallZone: cfg.PerCallZone(),
			},
			Expander: strftime.Expander{},
		},
		Scanner: &scan.Scanner{
			Log:    log,
			Guard:  guard,
			Parser: dateparse.Parser{},
		},
	}
}

// execClock runs one clock command and reports its result the way a
// command line tool does: the result on stdout, or the error message on
// stderr and a non-zero exit status.
func execClock(stdout, stderr io.Writer, d *coreclock.Dispatcher, args []string) int {
	res, err := d.Dispatch(args...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, res)
	return 0
}

// runClock reads the system clock directly. A one-shot command exits
// before an NTP exchange could correct it, so ntp_server is not consulted.
func runClock(args []string) int {
	timebase.RegisterClock(&clock.SystemClock{Log: log})
	return execClock(os.Stdout, os.Stderr, newDispatcher(config.Default()), args)
}

func runServer(configFile string, verbose bool) {
	ctx := context.Background()

	cfg := loadConfig(configFile)
	if cfg.LogFile != "" {
		initLogger(verbose, logFileConfig(cfg))
	}

	lclk := newSystemClock(ctx, cfg)
	timebase.RegisterClock(lclk)

	d := newDispatcher(cfg)
	_, err := server.StartIPServer(ctx, log, cfg.LocalAddr, cfg.NumGoroutine, d)
	if err != nil {
		log.Fatal("failed to start server", zap.String("local address", cfg.LocalAddr), zap.Error(err))
	}

	runMonitor(log, cfg.MetricsAddr)
}

func runTool(remoteAddrStr string, words []string) int {
	remoteAddr, err := net.ResolveUDPAddr("udp", remoteAddrStr)
	if err != nil {
		log.Fatal("failed to resolve remote address", zap.String("remote", remoteAddrStr), zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()
	res, err := client.Do(ctx, log, remoteAddr, words...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(res)
	return 0
}

func runBenchmark(configFile, remoteAddrStr string) {
	cfg := loadConfig(configFile)

	var res benchmark.Result
	if remoteAddrStr != "" {
		remoteAddr, err := net.ResolveUDPAddr("udp", remoteAddrStr)
		if err != nil {
			log.Fatal("failed to resolve remote address", zap.String("remote", remoteAddrStr), zap.Error(err))
		}
		res = benchmark.RunIPBenchmark(log, remoteAddr, cfg.BenchmarkGoroutines, cfg.BenchmarkRequests)
	} else {
		timebase.RegisterClock(&clock.SystemClock{Log: zap.NewNop()})
		res = benchmark.RunDispatcherBenchmark(log, newDispatcher(cfg),
			cfg.BenchmarkGoroutines, cfg.BenchmarkRequests)
	}
	err := res.Print(os.Stdout)
	if err != nil {
		log.Fatal("failed to print benchmark result", zap.Error(err))
	}
}

func exitWithUsage() {
	fmt.Println(`usage:
  clockservice clock clicks ?-milliseconds|-microseconds?
  clockservice clock format clockval ?-format string? ?-gmt boolean?
  clockservice clock scan dateString ?-base clockValue? ?-gmt boolean?
  clockservice clock seconds
  clockservice server -config <file> [-verbose]
  clockservice tool -remote <host:port> [-verbose] -- <subcommand> ?arg ...?
  clockservice benchmark -config <file> [-remote <host:port>] [-verbose]`)
	os.Exit(1)
}

func main() {
	var (
		verbose       bool
		configFile    string
		remoteAddrStr string
	)

	serverFlags := flag.NewFlagSet("server", flag.ExitOnError)
	toolFlags := flag.NewFlagSet("tool", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	serverFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	serverFlags.StringVar(&configFile, "config", "", "Config file")

	toolFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	toolFlags.StringVar(&remoteAddrStr, "remote", "", "Remote address")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&configFile, "config", "", "Config file")
	benchmarkFlags.StringVar(&remoteAddrStr, "remote", "", "Remote address")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case "clock":
		initLogger(false, logbase.FileConfig{})
		os.Exit(runClock(os.Args[2:]))
	case serverFlags.Name():
		err := serverFlags.Parse(os.Args[2:])
		if err != nil || serverFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose, logbase.FileConfig{})
		runServer(configFile, verbose)
	case toolFlags.Name():
		err := toolFlags.Parse(os.Args[2:])
		if err != nil || toolFlags.NArg() == 0 {
			exitWithUsage()
		}
		if remoteAddrStr == "" {
			exitWithUsage()
		}
		initLogger(verbose, logbase.FileConfig{})
		os.Exit(runTool(remoteAddrStr, toolFlags.Args()))
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose, logbase.FileConfig{})
		runBenchmark(configFile, remoteAddrStr)
	default:
		exitWithUsage()
	}
}
