// Package main fits particle field parameters to a target link density with
// CMA-ES, running the field headless.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
)

// evalRow is one line of the evaluation log.
type evalRow struct {
	Eval             int     `csv:"eval"`
	Loss             float64 `csv:"loss"`
	LinksPerParticle float64 `csv:"links_per_particle"`
	PointerLinks     float64 `csv:"pointer_links"`
	Particles        int     `csv:"particles"`
	AreaPerParticle  float64 `csv:"area_per_particle"`
	LinkDistance     float64 `csv:"link_distance"`
	PointerDistance  float64 `csv:"pointer_distance"`
	MaxSpeed         float64 `csv:"max_speed"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	linksPerParticle := flag.Float64("links", 2.0, "Target mean pair links per particle")
	pointerLinks := flag.Float64("pointer-links", 8.0, "Target mean lines to a centred pointer")
	frames := flag.Int("frames", 300, "Frames per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	base, err := field.ParamsFromConfig(cfg.Field)
	if err != nil {
		log.Fatalf("invalid field config: %v", err)
	}

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(base, Target{
		LinksPerParticle: *linksPerParticle,
		PointerLinks:     *pointerLinks,
		Width:            cfg.Screen.Width,
		Height:           cfg.Screen.Height,
		Frames:           *frames,
	}, evalSeeds)

	dim := knobCount
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestLoss := 1e9
	var best Knobs
	found := false
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			k := KnobsAt(x)
			res := evaluator.Evaluate(k)
			evalCount++

			if res.Loss < bestLoss {
				bestLoss = res.Loss
				best = k
				found = true
			}

			row := []evalRow{{
				Eval:             evalCount,
				Loss:             res.Loss,
				LinksPerParticle: res.LinksPerParticle.Mean,
				PointerLinks:     res.PointerLinks,
				Particles:        res.Particles,
				AreaPerParticle:  k.AreaPerParticle,
				LinkDistance:     k.LinkDistance,
				PointerDistance:  k.PointerDistance,
				MaxSpeed:         k.MaxSpeed,
			}}
			write := gocsv.MarshalWithoutHeaders
			if evalCount == 1 {
				write = gocsv.Marshal
			}
			if err := write(row, logFile); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			fmt.Printf("Eval %d/%d: loss=%.4f links/particle=%.2f pointer=%.1f (best=%.4f) | elapsed: %s\n",
				evalCount, *maxEvals, res.Loss, res.LinksPerParticle.Mean, res.PointerLinks, bestLoss,
				time.Since(startTime).Round(time.Second))
			return res.Loss
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	start := KnobsFromConfig(cfg.Field).Clipped()
	result, err := optimize.Minimize(problem, start.Unit(), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if !found && result != nil {
		best = KnobsAt(result.X)
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best loss: %.4f\n\nBest parameters:\n", bestLoss)
	fmt.Printf("  field.area_per_particle: %.4f\n", best.AreaPerParticle)
	fmt.Printf("  field.link_distance: %.4f\n", best.LinkDistance)
	fmt.Printf("  field.pointer_distance: %.4f\n", best.PointerDistance)
	fmt.Printf("  field.max_speed: %.4f\n", best.MaxSpeed)

	bestCfg, _ := config.Load(*configPath)
	best.WriteTo(&bestCfg.Field)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
