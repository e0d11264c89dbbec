package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentuity/tiercache/cache"
	"github.com/agentuity/tiercache/config"
	"github.com/agentuity/tiercache/logger"
)

var (
	configFile string
	writes     int
	reads      int
	tier       string
)

var rootCmd = &cobra.Command{
	Use:   "tiercache",
	Short: "Inspect and exercise the tiered in-process cache",
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic write/read workload and print per-tier statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewConsoleLogger()
		settings, err := config.Load(configFile)
		if err != nil {
			return err
		}
		opts, err := settings.Options()
		if err != nil {
			return err
		}
		opts = append(opts, cache.WithLogger(log.WithPrefix("cache")))
		m := cache.New(opts...)
		defer m.Close()

		level, err := parseLevel(tier)
		if err != nil {
			return err
		}

		keys := make([]string, writes)
		start := time.Now()
		for i := range keys {
			keys[i] = cache.GenerateKey("bench", []byte(uuid.NewString()))
			if err := m.Write(keys[i], i, level); err != nil {
				return err
			}
		}
		writeElapsed := time.Since(start)

		start = time.Now()
		var hits int
		for i := 0; i < reads; i++ {
			if _, found, _ := m.Read(keys[i%len(keys)]); found {
				hits++
			}
		}
		readElapsed := time.Since(start)

		log.Info("%d writes in %s, %d/%d reads hit in %s", writes, writeElapsed, hits, reads, readElapsed)
		printStats(m)
		return nil
	},
}

func parseLevel(s string) (cache.Level, error) {
	for _, level := range cache.Levels() {
		if level.String() == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q (want l1, l2, l3 or l4)", s)
}

func printStats(m *cache.Manager) {
	stats := m.AllStats()
	fmt.Printf("%-5s %8s %8s %8s %8s %8s %10s %8s\n",
		"tier", "size", "max", "hits", "misses", "evicted", "bytes", "hitrate")
	for _, level := range cache.Levels() {
		s := stats[level]
		fmt.Printf("%-5s %8d %8d %8d %8d %8d %10d %7.1f%%\n",
			level, s.Size, s.MaxSize, s.Hits, s.Misses, s.Evictions, s.TotalBytes, s.HitRate()*100)
	}
}

func main() {
	benchCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a tiercache settings file")
	benchCmd.Flags().IntVarP(&writes, "writes", "w", 10000, "number of keys to write")
	benchCmd.Flags().IntVarP(&reads, "reads", "r", 50000, "number of reads to issue")
	benchCmd.Flags().StringVarP(&tier, "tier", "t", "l3", "tier to write into (l1, l2, l3, l4)")
	rootCmd.AddCommand(benchCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
