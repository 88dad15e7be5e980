package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leanviz/layout3d/internal/config"
	"github.com/leanviz/layout3d/internal/engine"
	"github.com/leanviz/layout3d/internal/export"
	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/server"
	"github.com/leanviz/layout3d/internal/tui"
	"github.com/leanviz/layout3d/internal/vec"
)

const version = "0.3.0"

var (
	configFile string
	preset     string
	dt         float64
	maxSteps   int
	seed       int64
	outFile    string
	svgFile    string
	svgWidth   int
	svgHeight  int
	verbose    bool
	// serve
	addr string
	// watch
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "layout3d",
		Short: "force-directed 3d layout for theorem dependency graphs",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset configuration (sparse, dense, clustered)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [graph]",
		Short: "lay out a graph headlessly until it converges",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = config value)")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget (0 = config value)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "initial placement seed (0 = config value)")
	runCmd.Flags().StringVar(&outFile, "out", "", "write positions json to file (default stdout)")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "also write an svg projection")
	runCmd.Flags().IntVar(&svgWidth, "svg-width", 1200, "svg width")
	runCmd.Flags().IntVar(&svgHeight, "svg-height", 900, "svg height")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the layout protocol over a websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")

	watchCmd := &cobra.Command{
		Use:   "watch [graph]",
		Short: "lay out a graph with a live convergence monitor",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = config value)")
	watchCmd.Flags().Int64Var(&seed, "seed", 0, "initial placement seed (0 = config value)")
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "steps per second")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(strings.Join(config.ListPresets(), "\n"))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("layout3d " + version)
		},
	}

	rootCmd.AddCommand(runCmd, serveCmd, watchCmd, presetsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	if configFile != "" && preset != "" {
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// applyFlags lets explicit flags override whatever the config said.
func applyFlags(cfg *config.Config) {
	if dt > 0 {
		cfg.Run.Dt = dt
	}
	if maxSteps > 0 {
		cfg.Run.MaxSteps = maxSteps
	}
	if seed != 0 {
		cfg.Run.Seed = seed
	}
}

// seedPositions scatters nodes uniformly inside a sphere whose radius
// grows with the cube root of the node count, so the initial density
// is independent of graph size.
func seedPositions(g *graph.Graph, seed int64, spacing float64) map[string]vec.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	radius := spacing * math.Cbrt(float64(len(g.Nodes))+1)
	positions := make(map[string]vec.Vec3, len(g.Nodes))
	for _, n := range g.Nodes {
		for {
			p := vec.Vec3{
				X: (rng.Float64()*2 - 1) * radius,
				Y: (rng.Float64()*2 - 1) * radius,
				Z: (rng.Float64()*2 - 1) * radius,
			}
			if p.Length() <= radius {
				positions[n.ID] = p
				break
			}
		}
	}
	return positions
}

func runLayout(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	g, err := graph.Load(args[0])
	if err != nil {
		return err
	}
	log.Info("graph loaded", "nodes", len(g.Nodes), "edges", len(g.Edges))

	// Headless runs use the synchronous session directly; there is no
	// render loop to keep responsive.
	session := engine.NewSession()
	session.SetStability(cfg.Run.StabilityThreshold, cfg.Run.StableRun)
	session.Init(
		seedPositions(g, cfg.Run.Seed, cfg.Run.Spacing),
		nil,
		g.Edges,
		cfg.Physics,
		g.NamespaceGroups(),
	)

	var last engine.StepResult
	steps := 0
	for ; steps < cfg.Run.MaxSteps; steps++ {
		last = session.Step(cfg.Run.Dt)
		if last.BecameStable {
			break
		}
		if verbose && steps%100 == 0 {
			log.Debug("stepping", "step", steps, "movement", last.Movement, "stableFrames", last.StableFrames)
		}
	}
	log.Info("layout finished", "steps", session.Steps(), "movement", last.Movement, "converged", session.Stable())

	positions := session.Positions()
	layout := export.NewLayout(session.Steps(), last.Movement, session.Stable(), positions)
	if outFile != "" {
		if err := export.WriteJSON(outFile, layout); err != nil {
			return err
		}
		log.Info("positions written", "path", outFile)
	} else if err := export.WriteJSONStdout(layout); err != nil {
		return err
	}

	if svgFile != "" {
		svg := export.SVG(positions, g.Edges, svgWidth, svgHeight)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		log.Info("svg written", "path", svgFile)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	return server.New(newLogger()).ListenAndServe(addr)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	g, err := graph.Load(args[0])
	if err != nil {
		return err
	}

	worker := engine.NewWorker()
	worker.Send(engine.Init{
		Positions: seedPositions(g, cfg.Run.Seed, cfg.Run.Spacing),
		Edges:     g.Edges,
		Physics:   cfg.Physics,
		Groups:    g.NamespaceGroups(),
	})
	return tui.Run(worker, cfg.Run.Dt, frameRate)
}
