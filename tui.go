package rmxpiano

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rapidmidiex/rmxpiano/config"
	"github.com/rapidmidiex/rmxpiano/keymap"
	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/pianoui"
	"github.com/rapidmidiex/rmxpiano/presetui"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/styles"
)

type (
	appView int

	mainModel struct {
		curView  appView
		presets  tea.Model
		piano    tea.Model
		sizing   layout.Config
		disabled bool
		cache    *layout.Cache
		size     *tea.WindowSizeMsg
		curError string
		log      *log.Logger
	}
)

const (
	presetView appView = iota
	pianoView
)

// NewModel starts on the preset list, or straight on the configured keyboard when
// openKeyboard is set.
func NewModel(cfg config.Config, logger *log.Logger, openKeyboard bool) (mainModel, error) {
	if logger == nil {
		logger = log.Default()
	}
	m := mainModel{
		curView:  presetView,
		presets:  presetui.New(cfg.Range),
		sizing:   cfg.Sizing,
		disabled: cfg.Disabled,
		cache:    layout.NewCache(len(presetui.Presets) + 1),
		log:      logger,
	}
	if openKeyboard {
		kb, err := m.cache.Keyboard(cfg.Range, cfg.Sizing)
		if err != nil {
			return mainModel{}, err
		}
		m.piano = pianoui.New(kb, logger).WithDisabled(m.disabled)
		m.curView = pianoView
	}
	return m, nil
}

func (m mainModel) Init() tea.Cmd {
	return m.presets.Init()
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case rmxerr.ErrMsg:
		m.curError = rmxerr.UserMessage(msg.Err)

	case tea.KeyMsg:
		// Ctrl+c exits. Even with short running programs it's good to have
		// a quit key, just incase your logic is off. Users will be very
		// annoyed if they can't exit.
		if key.Matches(msg, keymap.DefaultMapping.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.size = &msg
		if m.curView != presetView {
			m.presets, cmd = m.presets.Update(msg)
			cmds = append(cmds, cmd)
		}

	case presetui.Selected:
		kb, err := m.cache.Keyboard(msg.Preset.Range, m.sizing)
		if err != nil {
			m.log.Error("open keyboard", "preset", msg.Preset.Name, "err", err)
			m.curError = rmxerr.UserMessage(err)
			return m, nil
		}
		m.log.Debug("open keyboard", "preset", msg.Preset.Name, "start", kb.Range().Start, "end", kb.Range().End)
		m.curError = ""
		m.piano = pianoui.New(kb, m.log).WithDisabled(m.disabled)
		if m.size != nil {
			m.piano, _ = m.piano.Update(*m.size)
		}
		m.curView = pianoView
		return m, nil

	case pianoui.BackMsg:
		m.curView = presetView
		return m, nil
	}

	// Call sub-model Updates
	switch m.curView {
	case presetView:
		m.presets, cmd = m.presets.Update(msg)
	case pianoView:
		m.piano, cmd = m.piano.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m mainModel) View() string {
	var errLine string
	if m.curError != "" {
		errLine = styles.RenderError(m.curError) + "\n"
	}

	switch m.curView {
	case pianoView:
		return errLine + m.piano.View()
	default:
		return errLine + m.presets.View()
	}
}

// Run shows the keyboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger, openKeyboard bool) error {
	m, err := NewModel(cfg, logger, openKeyboard)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
