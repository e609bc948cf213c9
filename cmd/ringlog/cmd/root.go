package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/calder-robotics/ringlog"
)

var (
	levelName string
	logDir    string

	rootCmd = &cobra.Command{
		Use:   "ringlog",
		Short: "ringlog exercises the asynchronous logging core",
		Long: `ringlog drives the logging core end to end: console, rotating and
daily file sinks, tags, and the lock-free record ring.`,
	}

	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "emit a demonstration log stream through every sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}

	benchProducers int
	benchRecords   int

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "measure producer throughput against a memory sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&levelName, "level", "l", "TRACE", "minimum log level")
	rootCmd.PersistentFlags().StringVarP(&logDir, "dir", "d", "logs", "directory for file sinks")

	benchCmd.Flags().IntVarP(&benchProducers, "producers", "p", 4, "producer goroutines")
	benchCmd.Flags().IntVarP(&benchRecords, "records", "n", 100000, "records per producer")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*ringlog.Logger, error) {
	level, err := ringlog.ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}
	return ringlog.New(ringlog.Config{Level: level})
}

func runDemo() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	logger.AddSink(ringlog.NewConsoleSink())
	logger.AddSink(ringlog.NewRotatingFileSink(logDir+"/demo.log", 64*1024, 3))
	logger.AddSink(ringlog.NewDailyFileSink(logDir, "demo_daily", 7, false))
	logger.AddSink(ringlog.NewCallbackSink(func(rec *ringlog.Record) {
		if rec.Level >= ringlog.ERROR {
			fmt.Fprintf(os.Stderr, "[ALERT] %s\n", rec.Message())
		}
	}))

	ctx := ringlog.Context()
	ctx.SetProcessName("ringlog-demo")
	ctx.SetGlobalTag("env", "dev")
	ctx.SetThreadName("main")

	logger.Start()
	defer logger.Stop()

	logger.Trace("demo started")
	logger.Debugf("debug value: %d", 42)
	logger.Infof("hello %s, version %s", "world", "1.0")
	logger.Warnf("disk usage at %d%%", 85)
	logger.Errorf("connection failed: %s", "timeout")

	tag := ringlog.NewScopedTag("module", "network")
	logger.Infof("sending request to %s", "api.example.com")
	logger.Infof("received %d bytes", 4096)
	tag.Close()
	logger.Info("back to main context")

	var progress ringlog.Counter
	for i := 0; i < 100; i++ {
		logger.LogEveryN(&progress, 25, ringlog.INFO, "progress: iteration %d", i)
	}

	time.Sleep(10 * time.Millisecond)
	return nil
}

func runBench() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	sink := ringlog.NewMemoryRingSink(1024)
	logger.AddSink(sink)
	logger.Start()

	var wg sync.WaitGroup
	start := time.Now()
	for p := 0; p < benchProducers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < benchRecords; i++ {
				logger.Infof("producer %d record %d", id, i)
			}
		}(p)
	}
	wg.Wait()
	logger.Stop()
	elapsed := time.Since(start)

	total := benchProducers * benchRecords
	dropped := logger.DropCount()
	fmt.Printf("pushed %d records in %v (%.0f rec/s), dropped %d, retained %d\n",
		total, elapsed, float64(total)/elapsed.Seconds(), dropped, sink.Size())
	return nil
}
