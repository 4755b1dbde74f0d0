package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cache "github.com/krisalay/routecache"
	api "github.com/krisalay/routecache/api"
	"github.com/krisalay/routecache/config"
	"github.com/krisalay/routecache/engine"
	"github.com/krisalay/routecache/loader"
	"github.com/krisalay/routecache/logging"
	"github.com/krisalay/routecache/metrics"
	"github.com/krisalay/routecache/preload"
	"github.com/krisalay/routecache/types"
)

var (
	configPath  string
	devLogs     bool
	scenarioTTL time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "routecache",
	Short: "In-memory TTL cache for route data",
	Long: `routecache keeps route payloads (model lists, magazine issues, gallery pages)
in memory for a bounded freshness window so repeated navigation does not refetch them.`,
	SilenceUsage: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through set/get/expire/clear against a live cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDemo(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (defaults built in)")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "human-readable logs")
	demoCmd.Flags().DurationVar(&scenarioTTL, "ttl", 500*time.Millisecond, "TTL used for the expiry scenario")
	rootCmd.AddCommand(demoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// catalog stands in for the site's content API when no Redis tier is configured.
var catalog = map[string]any{
	"/models":   []string{"ana", "bea", "cleo"},
	"/magazine": "issue-42",
	"/gallery":  []string{"spring-campaign", "runway-2026"},
	"/events":   []string{"open-casting"},
}

func buildLoader(cfg *config.Config, logger *zap.Logger) (types.Loader, func()) {
	if cfg.Redis.Addr != "" {
		l, client := loader.Dial(cfg.Redis.Addr, cfg.Redis.Prefix)
		logger.Info("using redis loader", zap.String("addr", cfg.Redis.Addr))
		return l, func() { _ = client.Close() }
	}

	return loader.Func(func(ctx context.Context, key string) (any, error) {
		v, ok := catalog[key]
		if !ok {
			return nil, loader.ErrNotFound
		}
		return v, nil
	}), func() {}
}

func runDemo(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, devLogs)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ld, closeLoader := buildLoader(cfg, logger)
	defer closeLoader()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewPrometheus("routecache", reg)
	if err != nil {
		return err
	}

	sc, err := cache.NewFromConfig(cfg, ld, m, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	var c api.Cache = sc
	defer c.Close()

	section("1) PRELOAD")
	rep, err := preload.New(c, 0, logger).Warm(ctx, "/models", "/magazine", "/gallery", "/events", "/missing")
	fmt.Printf("loaded=%v skipped=%v failed=%v err=%v\n", rep.Loaded, rep.Skipped, rep.Failed, err)

	section("2) HIT")
	v, ok := c.Get("/models")
	fmt.Println("GET /models =", v, ok)

	section("3) EXPIRY")
	c.SetWithTTL("models", catalog["/models"], scenarioTTL)
	fmt.Printf("SET models (ttl=%s), size=%d\n", scenarioTTL, c.Size())

	if !sleep(ctx, scenarioTTL*3/5) {
		return ctx.Err()
	}
	fmt.Println("GET models before ttl =", c.Lookup("models").OrElse("<absent>"))

	if !sleep(ctx, scenarioTTL*3/5) {
		return ctx.Err()
	}
	fmt.Println("GET models after ttl  =", c.Lookup("models").OrElse("<absent>"))
	fmt.Println("size after lazy purge =", c.Size())

	section("4) CLEAR")
	c.Clear()
	fmt.Println("size after clear =", c.Size(), "has /models =", c.Has("/models"))

	section("METRICS")
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Printf("%-40s %-14s %.0f\n", mf.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue())
		}
	}
	return nil
}

func section(title string) {
	fmt.Printf("\n==================== %s ====================\n", title)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
