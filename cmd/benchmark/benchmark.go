package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cache "github.com/krisalay/routecache"
	"github.com/krisalay/routecache/engine"
	"github.com/krisalay/routecache/eviction"
	"github.com/krisalay/routecache/expiration"
)

var (
	shards      int
	capacity    int
	preloadKeys int
	goroutines  int
	opsPerG     int
	writeRatio  int
	ttl         time.Duration
)

var benchCmd = &cobra.Command{
	Use:   "routecache-bench",
	Short: "Concurrent get/set load test against an in-memory route cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if goroutines <= 0 || opsPerG <= 0 || preloadKeys <= 0 {
			return errors.New("goroutines, ops and keys must be positive")
		}
		run()
		return nil
	},
	SilenceUsage: true,
}

func init() {
	f := benchCmd.Flags()
	f.IntVar(&shards, "shards", 8, "shard count (rounded up to a power of two)")
	f.IntVar(&capacity, "capacity", 0, "entry limit, 0 for unbounded")
	f.IntVar(&preloadKeys, "keys", 100000, "distinct keys written before the run")
	f.IntVar(&goroutines, "goroutines", 200, "concurrent workers")
	f.IntVar(&opsPerG, "ops", 5000, "operations per worker")
	f.IntVar(&writeRatio, "write-percent", 10, "share of operations that are sets")
	f.DurationVar(&ttl, "ttl", time.Minute, "default TTL")
}

func main() {
	if err := benchCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() {
	eng := engine.NewCacheEngine(&expiration.ExpireAfterWrite{Default: ttl}, nil, nil)
	c := cache.NewShardedCache(shards, capacity, eviction.LRU, eng)
	defer c.Close()

	fmt.Println("\n================ ROUTE CACHE LOAD BENCHMARK =================")
	fmt.Println("Shards        :", shards)
	fmt.Println("Capacity      :", capacity)
	fmt.Println("Keys          :", preloadKeys)
	fmt.Println("Goroutines    :", goroutines)
	fmt.Println("Ops/Goroutine :", opsPerG)
	fmt.Println("Write %       :", writeRatio)

	keys := make([]string, preloadKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("/route/%d", i)
		c.Set(keys[i], i)
	}

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				key := keys[(id*opsPerG+j)%len(keys)]
				if j%100 < writeRatio {
					c.Set(key, j)
					continue
				}
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Final Size       : %d\n", c.Size())
}
