// Command traffic-sweep runs the traffic model headless over a grid of seeds
// and parameters and ranks the combinations by throughput.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"roadsim/internal/scenario"
	"roadsim/internal/sims/traffic"
)

type paramSet struct {
	Seed        int64   `yaml:"seed"`
	Injection   float64 `yaml:"injection_probability"`
	BrakeFactor float64 `yaml:"brake_factor"`
}

func (p paramSet) String() string {
	return fmt.Sprintf("seed=%d inject=%.2f brake=%.2f", p.Seed, p.Injection, p.BrakeFactor)
}

type runResult struct {
	Params     paramSet `yaml:"params"`
	Throughput float64  `yaml:"throughput"`
	MeanLive   float64  `yaml:"mean_live"`
	PeakLive   int      `yaml:"peak_live"`
	Injected   int      `yaml:"injected"`
	Removed    int      `yaml:"removed"`
	Err        string   `yaml:"error,omitempty"`
}

func main() {
	steps := flag.Int("steps", 500, "ticks to simulate per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of runs simulated concurrently")
	seeds := flag.String("seeds", "1,2,3", "comma separated seeds")
	probs := flag.String("inject", "0.05,0.1,0.2,0.4", "comma separated injection probabilities")
	brakes := flag.String("brake", "0.9", "comma separated brake factors")
	scenarioPath := flag.String("scenario", "", "YAML scenario, defaults to the demo highway")
	top := flag.Int("top", 5, "results to print")
	asYAML := flag.Bool("yaml", false, "print every result as YAML instead of a ranking")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sweep", ReportTimestamp: true})

	base, err := loadBase(*scenarioPath)
	if err != nil {
		logger.Fatal("load scenario", "err", err)
	}
	sets, err := buildSets(*seeds, *probs, *brakes)
	if err != nil {
		logger.Fatal("parse sweep flags", "err", err)
	}

	logger.Info("sweeping", "runs", len(sets), "workers", *workers, "steps", *steps, "scenario", base.Name)

	start := time.Now()
	all := sweep(base, sets, *steps, max(*workers, 1))
	elapsed := time.Since(start)

	failed := lo.Filter(all, func(r runResult, _ int) bool { return r.Err != "" })
	for _, r := range failed {
		logger.Error("run failed", "params", r.Params, "err", r.Err)
	}

	if *asYAML {
		if err := writeYAML(os.Stdout, all); err != nil {
			logger.Fatal("encode results", "err", err)
		}
		return
	}

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(all)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		r := all[i]
		fmt.Printf("%2d) throughput=%.3f/tick meanLive=%.1f peakLive=%d in=%d out=%d %s\n",
			i+1, r.Throughput, r.MeanLive, r.PeakLive, r.Injected, r.Removed, r.Params)
	}
}

func loadBase(path string) (scenario.Scenario, error) {
	if path == "" {
		return scenario.Scenario{Name: "demo", Segments: traffic.DemoSegments}, nil
	}
	return scenario.Load(path)
}

func buildSets(seeds, probs, brakes string) ([]paramSet, error) {
	seedVals, err := parseList(seeds, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
	if err != nil {
		return nil, fmt.Errorf("seeds: %w", err)
	}
	probVals, err := parseList(probs, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	if err != nil {
		return nil, fmt.Errorf("inject: %w", err)
	}
	brakeVals, err := parseList(brakes, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	if err != nil {
		return nil, fmt.Errorf("brake: %w", err)
	}

	for _, p := range probVals {
		if !(p >= 0 && p <= 1) {
			return nil, fmt.Errorf("inject: probability %g outside [0, 1]", p)
		}
	}
	for _, b := range brakeVals {
		if !(b >= 0 && b < 1) {
			return nil, fmt.Errorf("brake: factor %g outside [0, 1)", b)
		}
	}

	var sets []paramSet
	for _, seed := range lo.Uniq(seedVals) {
		for _, p := range lo.Uniq(probVals) {
			for _, b := range lo.Uniq(brakeVals) {
				sets = append(sets, paramSet{Seed: seed, Injection: p, BrakeFactor: b})
			}
		}
	}
	return sets, nil
}

func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	fields := lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string { return strings.TrimSpace(s) }))
	out := make([]T, 0, len(fields))
	for _, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", raw)
	}
	return out, nil
}

// sweep fans runs out to workers and returns the results ranked by
// throughput, best first.
func sweep(base scenario.Scenario, sets []paramSet, steps, workers int) []runResult {
	jobs := make(chan paramSet)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []runResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Throughput != all[j].Throughput {
			return all[i].Throughput > all[j].Throughput
		}
		return all[i].Params.String() < all[j].Params.String()
	})
	return all
}

func runScenario(base scenario.Scenario, params paramSet, steps int) runResult {
	res := runResult{Params: params}

	// The scenario's own overrides stay in force; the sweep axes replace
	// only the values they cover. Runs already execute in parallel.
	s := base
	seed, inject, brake, workers := params.Seed, params.Injection, params.BrakeFactor, 1
	s.Params.Seed = &seed
	s.Params.InjectionProbability = &inject
	s.Params.BrakeFactor = &brake
	s.Params.Workers = &workers
	world, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		res.Err = err.Error()
		return res
	}

	liveSum := 0
	for step := 0; step < steps; step++ {
		if err := world.Step(); err != nil {
			res.Err = fmt.Sprintf("step %d: %v", step, err)
			return res
		}
		live := world.Stats().Live
		liveSum += live
		res.PeakLive = max(res.PeakLive, live)
	}

	stats := world.Stats()
	res.Injected = stats.Injected
	res.Removed = stats.Removed
	if steps > 0 {
		res.Throughput = float64(stats.Removed) / float64(steps)
		res.MeanLive = float64(liveSum) / float64(steps)
	}
	return res
}

func writeYAML(w io.Writer, results []runResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return err
	}
	return enc.Close()
}
