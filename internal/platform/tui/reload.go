package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// ConfigChangedMsg reports that the watched config file was rewritten.
type ConfigChangedMsg struct {
	Path string
}

// ConfigWatchErrMsg reports a watcher failure.
type ConfigWatchErrMsg struct {
	Err error
}

// waitForConfig blocks until the watcher reports a change or an error.
// A closed watcher produces no message.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigWatchErrMsg{Err: err}
		}
	}
}
