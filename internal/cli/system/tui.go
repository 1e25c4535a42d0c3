package system

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/config"
	"github.com/julianstephens/studyslot/internal/instance"
	"github.com/julianstephens/studyslot/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lockDir := config.DefaultDir()
	if !cli.IsPostgres(ctx.Config.Database) {
		lockDir = filepath.Dir(ctx.Store.GetConfigPath())
	}
	lock, err := instance.Acquire(lockDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Scheduler, ctx.Validator), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}
	return nil
}
