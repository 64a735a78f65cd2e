package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start playing. The game defaults to "platformer".

Controls:
  Space/Up   - Jump
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  ?          - Toggle help
  Q/Ctrl+C   - Quit

With --config, the file is watched: saved changes are picked up and
applied when the next run starts.

Examples:
  platformer play
  platformer play --seed 7
  platformer play --config ./platformer.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := platformer.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q\nRun 'platformer list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := registry.Options{
		Config: &gameCfg,
		Sound:  audio.Silent{},
		Logger: logger,
	}
	if !flagMute {
		sm := audio.NewSoundManager()
		if initErr := sm.Initialize(); initErr != nil {
			logger.Warn("audio unavailable, playing silently", "error", initErr)
		} else {
			opts.Sound = sm
			defer sm.Cleanup()
		}
	}

	var watcher *config.Watcher
	if flagConfig != "" {
		watcher, err = config.NewWatcher(flagConfig)
		if err != nil {
			logger.Warn("config reload disabled", "error", err)
		} else {
			logger.Info("watching config", "path", watcher.Path())
			//nolint:errcheck // Best-effort close on exit
			defer watcher.Close()
		}
	}

	model, err := tui.NewModel(gameID, opts, runtime, watcher)
	if err != nil {
		return err
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(model); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
