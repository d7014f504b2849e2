package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/remote"
)

// Config holds the benchmark settings
var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
)

// Metrics
var (
	totalRequests uint64
	created       uint64
	listed        uint64
	updated       uint64
	deleted       uint64
	failStatus    uint64 // non-2xx responses
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080/paises", "Collection URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "crud", "Workload type: crud | read-heavy")
}

func main() {
	flag.Parse()
	log.Printf("Starting Benchmark: %s | Workers: %d | Duration: %s", workload, concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, i, start)
	}

	wg.Wait()
	printResults(time.Since(start))
}

// worker cycles create, list, update and delete on its own records so
// workers never touch each other's rows.
func worker(wg *sync.WaitGroup, n int, start time.Time) {
	defer wg.Done()
	client := remote.New[domain.Country, domain.CountryForm](targetURL, &http.Client{Timeout: 5 * time.Second})
	ctx := context.Background()

	for i := 0; time.Since(start) < duration; i++ {
		form := domain.CountryForm{
			Name:   fmt.Sprintf("bench-%d-%d", n, i),
			Goals:  rand.Int63n(20),
			Points: rand.Int63n(60),
		}

		rec, err := client.Create(ctx, form)
		if !record(err, &created) {
			continue
		}

		reads := 1
		if workload == "read-heavy" {
			reads = 10
		}
		for r := 0; r < reads; r++ {
			_, err := client.List(ctx)
			record(err, &listed)
		}

		form.Goals++
		_, err = client.Update(ctx, rec.ID, form)
		record(err, &updated)

		record(client.Delete(ctx, rec.ID), &deleted)
	}
}

func record(err error, success *uint64) bool {
	atomic.AddUint64(&totalRequests, 1)
	if err == nil {
		atomic.AddUint64(success, 1)
		return true
	}
	var reqErr *remote.RequestError
	if errors.As(err, &reqErr) && reqErr.Status != 0 {
		atomic.AddUint64(&failStatus, 1)
	} else {
		atomic.AddUint64(&failOther, 1)
	}
	return false
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)
	fStatus := atomic.LoadUint64(&failStatus)
	fErr := atomic.LoadUint64(&failOther)

	rps := float64(total) / d.Seconds()
	var errorRate float64
	if total > 0 {
		errorRate = float64(fStatus+fErr) / float64(total) * 100
	}

	results := map[string]interface{}{
		"workload":       workload,
		"duration_sec":   d.Seconds(),
		"total_requests": total,
		"throughput_rps": rps,
		"created":        atomic.LoadUint64(&created),
		"listed":         atomic.LoadUint64(&listed),
		"updated":        atomic.LoadUint64(&updated),
		"deleted":        atomic.LoadUint64(&deleted),
		"failed_status":  fStatus,
		"errors":         fErr,
		"error_rate_pct": errorRate,
	}

	// Print JSON for the python plotter to consume
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	// Also save to file
	filename := fmt.Sprintf("results_%s.json", workload)
	file, err := os.Create(filename)
	if err != nil {
		log.Printf("Could not write %s: %v", filename, err)
		return
	}
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
