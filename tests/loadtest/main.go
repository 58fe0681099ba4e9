package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numSeeded    = 50
)

var names = []string{"Amoxicillin", "Ibuprofen", "Metformin", "Lisinopril", "Atorvastatin", "Vitamin D"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// ids of seeded medications, shared by the workers
var (
	idsMu sync.RWMutex
	ids   []string
)

func main() {
	fmt.Println("=== MedReminder Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Seeded: %d\n\n", numWorkers, testDuration, numSeeded)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding medications (POST /medications) ---")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < numSeeded; i++ {
		doCreate(rng)
	}
	fmt.Printf("  seeded %d medications\n", len(ids))

	// Each mutation rebuilds every timer and rewrites the whole list, so the
	// write share stays low.
	fmt.Println("\n--- Phase 2: Mixed load (10% writes, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doLog(rng)
		case r < 0.10:
			return doUpdate(rng)
		case r < 0.50:
			return doGet("/medications")
		case r < 0.70:
			return doGetOne(rng)
		case r < 0.85:
			return doGet("/schedule")
		default:
			return doGet("/history")
		}
	})

	fmt.Println("\n--- Phase 3: Read-only load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.7 {
			return doGet("/medications")
		}
		return doGet("/schedule")
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, rps)
}

func randomInput(rng *rand.Rand) map[string]any {
	hour := rng.Intn(12) + 1
	meridiem := "AM"
	if rng.Intn(2) == 1 {
		meridiem = "PM"
	}
	return map[string]any{
		"name":        names[rng.Intn(len(names))],
		"dosage":      fmt.Sprintf("%dmg", (rng.Intn(10)+1)*50),
		"time":        fmt.Sprintf("%02d:%02d %s", hour, rng.Intn(60), meridiem),
		"isRecurring": rng.Float64() < 0.8,
	}
}

func randomID(rng *rand.Rand) string {
	idsMu.RLock()
	defer idsMu.RUnlock()
	if len(ids) == 0 {
		return "missing"
	}
	return ids[rng.Intn(len(ids))]
}

func send(endpoint, method, url string, body any, want int) (result, []byte) {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, nil
	}
	payload, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}, payload
}

func doCreate(rng *rand.Rand) result {
	res, payload := send("POST /medications", http.MethodPost, baseURL+"/medications", randomInput(rng), http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	if !res.err && json.Unmarshal(payload, &created) == nil {
		idsMu.Lock()
		ids = append(ids, created.ID)
		idsMu.Unlock()
	}
	return res
}

func doUpdate(rng *rand.Rand) result {
	res, _ := send("PUT /medication", http.MethodPut, baseURL+"/medication?id="+randomID(rng), randomInput(rng), http.StatusOK)
	return res
}

func doLog(rng *rand.Rand) result {
	action := "taken"
	if rng.Float64() < 0.2 {
		action = "skipped"
	}
	res, _ := send("POST /medication/log", http.MethodPost, baseURL+"/medication/log?id="+randomID(rng), map[string]string{"action": action}, http.StatusCreated)
	return res
}

func doGetOne(rng *rand.Rand) result {
	res, _ := send("GET /medication", http.MethodGet, baseURL+"/medication?id="+randomID(rng), nil, http.StatusOK)
	return res
}

func doGet(path string) result {
	res, _ := send("GET "+path, http.MethodGet, baseURL+path, nil, http.StatusOK)
	return res
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
