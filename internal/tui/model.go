// Package tui is the interactive browse surface: a split view over the
// directory tree and the filtered listing, with launch, rename, and
// clipboard actions driven by vim-flavored keys. All state mutation happens
// on the bubbletea update loop; filesystem work runs in commands and comes
// back as messages.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"uaman/internal/browse"
	"uaman/internal/config"
	"uaman/internal/dispatch"
	"uaman/internal/errors"
	"uaman/internal/history"
	"uaman/internal/log"
	"uaman/internal/tui/common"
	"uaman/internal/tui/components"
	"uaman/internal/tui/messages"
	"uaman/internal/tui/styles"
	"uaman/internal/tui/views"
	"uaman/internal/watch"
	"uaman/pkg/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	// Wiring
	cfg        *config.Config
	engine     *browse.Engine
	resolver   browse.Resolver
	dispatcher dispatch.Dispatcher
	ledger     *history.Store
	watcher    *watch.Watcher

	// Panes
	tree *components.TreePane
	list *components.EntryList

	// Core state
	mode        common.Mode
	pane        common.Pane
	missingOnly bool
	showHelp    bool
	detail      string

	// Args form state
	form *components.ArgsForm

	// Rename prompt state
	renameInput textinput.Model
	renamePath  string

	// Confirm prompt state
	confirmText   string
	pendingCmd    dispatch.Command
	pendingTarget string

	statusBar *components.StatusBar

	done   chan struct{}
	closed bool
	width  int
	height int
}

// New wires a model against cfg. The history ledger and the watcher are
// best-effort: when either cannot be opened the browser still works, the
// affected feature just stays off.
func New(cfg *config.Config) *Model {
	tree := browse.NewTree()
	tree.SetBasePath(cfg.Paths.TorrentsDir)

	ledger, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		log.With(log.F("error", err.Error())).Warn("launch history unavailable")
		ledger = nil
	}

	watcher, err := watch.New()
	if err != nil {
		log.With(log.F("error", err.Error())).Warn("filesystem watching unavailable")
		watcher = nil
	} else {
		if err := watcher.Add(cfg.Paths.TorrentsDir); err != nil {
			log.With(log.F("dir", cfg.Paths.TorrentsDir)).Debug("not watching base directory")
		}
		if err := watcher.Add(cfg.Paths.LogsDir); err != nil {
			log.With(log.F("dir", cfg.Paths.LogsDir)).Debug("not watching logs directory")
		}
	}

	renameInput := textinput.New()
	renameInput.Width = 48

	list := components.NewEntryList()
	list.SetCurrentDir(cfg.Paths.TorrentsDir)

	return &Model{
		cfg:         cfg,
		engine:      browse.NewEngine(cfg),
		ledger:      ledger,
		watcher:     watcher,
		tree:        components.NewTreePane(tree),
		list:        list,
		mode:        common.Browse,
		pane:        common.TreePane,
		renameInput: renameInput,
		statusBar:   components.NewStatusBar(),
		done:        make(chan struct{}),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshListing()}
	if m.watcher != nil {
		if err := m.watcher.Start(context.Background()); err == nil {
			cmds = append(cmds, m.nextWatchEvent())
		}
	}
	return tea.Batch(cmds...)
}

// Close releases background resources. Call it after the program loop has
// exited.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.ledger.Close()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := m.statusBar.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return model, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case messages.ListingMsg:
		// A stale result from a directory or filter change still in flight
		if msg.Dir != m.list.CurrentDir() || msg.Missing != m.missingOnly {
			break
		}
		m.statusBar.SetLoading(false)
		m.list.SetEntries(msg.Entries, msg.Missing)
		if msg.Err != nil {
			m.statusBar.SetError(errors.UserMessage(msg.Err))
			break
		}
		m.statusBar.SetText(fmt.Sprintf("%d entries", len(msg.Entries)))

	case messages.ArgsSubmittedMsg:
		m.mode = common.Browse
		m.form = nil
		if err := msg.Bag.SaveTo(m.cfg); err != nil {
			// The launch still proceeds with the values in hand
			log.With(log.F("error", err.Error())).Warn("could not persist launch arguments")
		}
		launch := dispatch.BuildCommand(m.cfg.Paths.UploadAssistantPath, msg.Target, msg.Bag)
		if name, ok := m.dispatcher.InTerminal(launch); ok {
			done := messages.LaunchDoneMsg{Target: msg.Target, Command: launch, Strategy: name}
			cmds = append(cmds, func() tea.Msg { return done })
			break
		}
		// No terminal emulator; ask before taking over this one
		m.pendingCmd = launch
		m.pendingTarget = msg.Target
		m.confirmText = "No terminal emulator found. Run in this window? [y/n]"
		m.mode = common.Confirm

	case messages.LaunchDoneMsg:
		_ = m.ledger.Record(history.Record{
			Target:   msg.Target,
			Args:     msg.Command.Line(),
			Strategy: msg.Strategy,
			OK:       msg.Err == nil,
		})
		if msg.Err != nil {
			m.statusBar.SetError(errors.UserMessage(msg.Err))
		} else {
			m.statusBar.SetText("Launched via " + msg.Strategy)
		}

	case messages.RenameDoneMsg:
		if msg.Err != nil {
			m.statusBar.SetError(errors.UserMessage(msg.Err))
			break
		}
		m.statusBar.SetText("Renamed to " + filepath.Base(msg.NewPath))
		cmds = append(cmds, m.refreshListing())

	case messages.StatsMsg:
		m.statusBar.SetLoading(false)
		if msg.Err != nil {
			m.statusBar.SetError(errors.UserMessage(msg.Err))
			break
		}
		m.detail = fmt.Sprintf("%s: %s", msg.Path, msg.Stats.Describe())
		m.statusBar.SetText("")

	case messages.WatchMsg:
		if m.watcher != nil {
			cmds = append(cmds, m.nextWatchEvent())
		}
		dir := filepath.Dir(msg.Event.Path)
		if m.missingOnly {
			if dir == m.cfg.Paths.LogsDir {
				cmds = append(cmds, m.refreshListing())
			}
		} else if dir == m.list.CurrentDir() {
			cmds = append(cmds, m.refreshListing())
		}

	case messages.YankMsg:
		if msg.Err != nil {
			m.statusBar.SetError("Clipboard unavailable: " + msg.Err.Error())
		} else {
			m.statusBar.SetText("Copied " + msg.Text)
		}

	case messages.ErrorMsg:
		m.statusBar.SetError(errors.UserMessage(msg.Err))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case common.ArgsForm:
		return m.handleFormKeys(msg)
	case common.Rename:
		return m.handleRenameKeys(msg)
	case common.Confirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "tab":
		if m.pane == common.TreePane {
			m.pane = common.ListPane
		} else {
			m.pane = common.TreePane
		}
	case "j", "down":
		if m.pane == common.TreePane {
			m.tree.MoveDown()
		} else {
			m.list.MoveCursor(1)
		}
	case "k", "up":
		if m.pane == common.TreePane {
			m.tree.MoveUp()
		} else {
			m.list.MoveCursor(-1)
		}
	case "g":
		if m.pane == common.TreePane {
			m.tree.MoveTop()
		} else {
			m.list.MoveTop()
		}
	case "G":
		if m.pane == common.TreePane {
			m.tree.MoveBottom()
		} else {
			m.list.MoveBottom()
		}
	case "h", "left":
		if m.pane == common.TreePane {
			if node := m.tree.CollapseOrParent(); node != nil {
				return m, m.enterDirectory(node.Path)
			}
		}
	case "l", "right":
		if m.pane == common.TreePane {
			if node := m.tree.Expand(); node != nil {
				return m, m.enterDirectory(node.Path)
			}
		} else if msg.String() == "l" {
			return m.openArgsForm()
		}
	case "enter", " ":
		if m.pane == common.TreePane {
			if node := m.tree.Toggle(); node != nil {
				return m, m.enterDirectory(node.Path)
			}
		} else if msg.String() == "enter" {
			return m.openArgsForm()
		}
	case "m":
		m.missingOnly = !m.missingOnly
		return m, m.refreshListing()
	case "R":
		m.tree.Refresh()
		return m, m.refreshListing()
	case "r":
		return m.openRenamePrompt()
	case "y":
		return m, m.yankSelection()
	case "s":
		return m, m.measureSelection()
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = common.Browse
		m.form = nil
		m.statusBar.SetText("Launch cancelled")
		return m, nil
	}
	return m, m.form.Update(msg)
}

func (m *Model) handleRenameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = common.Browse
		m.statusBar.SetText("Rename cancelled")
		return m, nil
	case "enter":
		m.mode = common.Browse
		return m, m.commitRename(m.renamePath, m.renameInput.Value())
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		launch := m.pendingCmd
		target := m.pendingTarget
		m.mode = common.Browse
		return m, tea.ExecProcess(launch.ExecCmd(), func(err error) tea.Msg {
			strategy, derr := dispatch.FallbackOutcome(launch.Executable, err)
			return messages.LaunchDoneMsg{Target: target, Command: launch, Strategy: strategy, Err: derr}
		})
	case "n", "N", "esc":
		m.mode = common.Browse
		m.statusBar.SetText("Launch cancelled")
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	switch m.mode {
	case common.ArgsForm:
		if m.form != nil {
			return styles.Theme.App.Render(m.form.View() + "\n\n" + m.statusBar.View())
		}
	case common.Rename:
		var sb strings.Builder
		sb.WriteString(styles.Theme.Title.Render("Rename") + "\n\n")
		sb.WriteString(m.renameInput.View() + "\n\n")
		sb.WriteString(styles.Theme.Help.Render("enter apply · esc cancel"))
		return styles.Theme.App.Render(sb.String())
	case common.Confirm:
		return styles.Theme.App.Render(m.confirmText)
	}
	return views.RenderMainView(m) + "\n" + m.statusBar.View()
}

// Commands

func (m *Model) refreshListing() tea.Cmd {
	dir := m.list.CurrentDir()
	missing := m.missingOnly
	engine := m.engine
	m.statusBar.SetLoading(true)
	return tea.Batch(m.statusBar.Spin(), func() tea.Msg {
		entries, err := engine.List(dir, types.Filter{MissingOnly: missing})
		return messages.ListingMsg{Dir: dir, Missing: missing, Entries: entries, Err: err}
	})
}

func (m *Model) nextWatchEvent() tea.Cmd {
	events := m.watcher.Events()
	done := m.done
	return func() tea.Msg {
		select {
		case ev := <-events:
			return messages.WatchMsg{Event: ev}
		case <-done:
			return nil
		}
	}
}

func (m *Model) yankSelection() tea.Cmd {
	entry := m.selectedEntry()
	if entry == nil {
		m.statusBar.SetText("Nothing selected")
		return nil
	}
	text := entry.Path
	if entry.Kind == types.EntryMissing {
		text = entry.Name()
	}
	return func() tea.Msg {
		return messages.YankMsg{Text: text, Err: clipboard.WriteAll(text)}
	}
}

func (m *Model) measureSelection() tea.Cmd {
	entry := m.selectedEntry()
	if entry == nil || entry.Kind == types.EntryMissing {
		m.statusBar.SetText("Select a real file or directory to measure")
		return nil
	}
	path := entry.Path
	m.statusBar.SetLoading(true)
	m.statusBar.SetText("Measuring " + filepath.Base(path))
	return tea.Batch(m.statusBar.Spin(), func() tea.Msg {
		stats, err := browse.Measure(path)
		return messages.StatsMsg{Path: path, Stats: stats, Err: err}
	})
}

func (m *Model) commitRename(path, newName string) tea.Cmd {
	resolver := m.resolver
	entry := types.Entry{Label: filepath.Base(path), Path: path, Kind: types.EntryReal}
	return func() tea.Msg {
		newPath, err := resolver.Rename(&entry, newName)
		return messages.RenameDoneMsg{OldPath: path, NewPath: newPath, Err: err}
	}
}

// Mode transitions

func (m *Model) openArgsForm() (tea.Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		m.statusBar.SetText("Nothing selected")
		return m, nil
	}
	if err := m.resolver.Launchable(entry); err != nil {
		m.statusBar.SetError(errors.UserMessage(err))
		return m, nil
	}
	m.form = components.NewArgsForm(entry.Path, dispatch.BagFromStore(m.cfg))
	m.mode = common.ArgsForm
	return m, textinput.Blink
}

func (m *Model) openRenamePrompt() (tea.Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		m.statusBar.SetText("Nothing selected")
		return m, nil
	}
	if !entry.Navigable() {
		m.statusBar.SetError(errors.UserMessage(errors.NewUnsupportedError("rename")))
		return m, nil
	}
	m.renamePath = entry.Path
	m.renameInput.SetValue(entry.Name())
	m.renameInput.CursorEnd()
	m.renameInput.Focus()
	m.mode = common.Rename
	return m, textinput.Blink
}

// enterDirectory follows a tree selection into the listing pane.
func (m *Model) enterDirectory(dir string) tea.Cmd {
	if dir == "" || dir == m.list.CurrentDir() {
		return nil
	}
	m.list.SetCurrentDir(dir)
	m.list.MoveTop()
	if m.missingOnly {
		// The missing view ignores the directory; it catches up when the
		// filter is toggled off
		return nil
	}
	return m.refreshListing()
}

// selectedEntry resolves the action target for the focused pane: the
// listing row under the cursor, or the tree directory under the cursor.
func (m *Model) selectedEntry() *types.Entry {
	if m.pane == common.ListPane {
		return m.list.Current()
	}
	node := m.tree.Current()
	if node == nil {
		return nil
	}
	return &types.Entry{Label: node.Name, Path: node.Path, Kind: types.EntryReal, IsDir: true}
}

func (m *Model) layout() {
	paneHeight := max(5, m.height-10)
	treeWidth := max(24, m.width/3)
	listWidth := max(24, m.width-treeWidth-8)
	m.tree.SetSize(treeWidth, paneHeight)
	m.list.SetSize(listWidth, paneHeight)
}

// ModelReader

func (m *Model) TreePaneView() string {
	return m.tree.View()
}

func (m *Model) ListPaneView() string {
	return m.list.View()
}

func (m *Model) ActivePane() common.Pane {
	return m.pane
}

func (m *Model) MissingOnly() bool {
	return m.missingOnly
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) CurrentDir() string {
	return m.list.CurrentDir()
}

func (m *Model) DetailLine() string {
	return m.detail
}

// Getters used by tests and the command layer

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) Entries() []types.Entry {
	return m.list.Entries()
}

func (m *Model) StatusText() string {
	return m.statusBar.Text()
}
