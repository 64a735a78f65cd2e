package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	flagTicks  int
	flagScreen bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by the autopilot",
	Long: `Run a game without a terminal UI. The autopilot jumps just before a
new platform arrives at the right edge and whenever a jump would reach a
coin. The run stops at game over or after --ticks ticks. Use --seed for reproducible runs and
--log-level debug to trace every spawn.

Examples:
  platformer simulate
  platformer simulate --seed 42 --ticks 7200 --screen`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum number of ticks to simulate")
	simulateCmd.Flags().BoolVar(&flagScreen, "screen", false, "Print the final frame")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = seed

	g := platformer.New(registry.Options{
		Config: &gameCfg,
		Sound:  audio.Silent{},
		Logger: logger,
	})
	g.Reset(runtime)

	start := time.Now()
	res := platformer.NewAutopilot().Run(g, flagTicks)
	logger.Info("simulation finished",
		"seed", seed,
		"ticks", res.Ticks,
		"jumps", res.Jumps,
		"score", res.Score,
		"over", res.Over,
		"elapsed", time.Since(start),
	)

	if flagScreen {
		screen := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
		g.Render(screen)
		for y := 0; y < screen.Height(); y++ {
			fmt.Println(strings.TrimRight(screen.Row(y), " "))
		}
	}

	played := time.Duration(res.Ticks) * time.Second / time.Duration(runtime.TickRate)
	fmt.Printf("seed %d: score %d after %d ticks (%s of play), %d jumps", seed, res.Score, res.Ticks, played, res.Jumps)
	if res.Over {
		fmt.Print(", fell off the screen")
	}
	fmt.Println()
	return nil
}
