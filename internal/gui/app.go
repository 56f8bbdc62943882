//go:build !nogui

// Package gui is the desktop front end: the same browse, filter, and
// dispatch operations as the terminal interface, rendered with fyne
// widgets. Selection drives everything; the tree picks the directory, the
// listing picks the entry, and the buttons act on whatever is selected.
package gui

import (
	"fmt"
	"path/filepath"
	"strings"

	"uaman/internal/browse"
	"uaman/internal/config"
	"uaman/internal/dispatch"
	"uaman/internal/errors"
	"uaman/internal/history"
	"uaman/internal/log"
	"uaman/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Available reports whether this build carries the desktop front end.
func Available() bool {
	return true
}

// Run builds the main window against cfg and blocks until it closes.
func Run(cfg *config.Config) error {
	New(cfg).Run()
	return nil
}

// App is the desktop application: one window holding the directory tree,
// the entry listing, and the action buttons.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	cfg        *config.Config
	engine     *browse.Engine
	dirTree    *browse.Tree
	resolver   browse.Resolver
	dispatcher dispatch.Dispatcher
	ledger     *history.Store

	tree      *widget.Tree
	entryList *widget.List
	pathEntry *widget.Entry
	status    *widget.Label

	currentDir  string
	missingOnly bool
	entries     []types.Entry
	selected    int
}

// New creates the application against cfg. The history ledger is best
// effort; the window opens without it.
func New(cfg *config.Config) *App {
	fyneApp := app.NewWithID("io.github.uaman")

	ledger, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		log.LogWithError(err).Warn("history unavailable")
		ledger = nil
	}

	dirTree := browse.NewTree()
	dirTree.SetBasePath(cfg.Paths.TorrentsDir)

	a := &App{
		fyneApp:    fyneApp,
		cfg:        cfg,
		engine:     browse.NewEngine(cfg),
		dirTree:    dirTree,
		ledger:     ledger,
		currentDir: cfg.Paths.TorrentsDir,
		selected:   -1,
	}
	a.mainWindow = a.fyneApp.NewWindow("uaman")

	return a
}

// Run shows the main window and blocks until the application exits.
func (a *App) Run() {
	a.setupMainWindow()

	a.mainWindow.Show()
	a.fyneApp.Run()

	if a.ledger != nil {
		a.ledger.Close()
	}
}

func (a *App) setupMainWindow() {
	a.status = widget.NewLabel("")

	a.pathEntry = widget.NewEntry()
	a.pathEntry.SetText(a.currentDir)
	a.pathEntry.OnSubmitted = func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if err := a.cfg.Set(config.SectionPaths, config.KeyTorrentsDir, path); err != nil {
			a.ShowError("Settings not saved", err)
			return
		}
		a.setBasePath(path)
	}

	a.tree = widget.NewTree(
		a.treeChildIDs,
		a.treeIsBranch,
		func(bool) fyne.CanvasObject {
			return widget.NewLabel("directory")
		},
		func(id widget.TreeNodeID, _ bool, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(filepath.Base(id))
		},
	)
	a.tree.OnSelected = func(id widget.TreeNodeID) {
		a.showDirectory(id)
	}

	a.entryList = widget.NewList(
		func() int {
			return len(a.entries)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel("entry"), layout.NewSpacer(), widget.NewLabel("detail"))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(a.entries) {
				return
			}
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(a.entries[i].Label)
			row.Objects[2].(*widget.Label).SetText(entryDetail(a.entries[i]))
		},
	)
	a.entryList.OnSelected = func(id widget.ListItemID) {
		a.selected = id
	}
	a.entryList.OnUnselected = func(id widget.ListItemID) {
		if a.selected == id {
			a.selected = -1
		}
	}

	browseButton := widget.NewButton("Browse...", func() {
		a.chooseBasePath()
	})
	missingCheck := widget.NewCheck("Missing only", func(on bool) {
		a.missingOnly = on
		a.refreshEntries()
	})
	refreshButton := widget.NewButton("Refresh", func() {
		a.reload()
	})
	toolbar := container.NewBorder(nil, nil, nil,
		container.NewHBox(browseButton, missingCheck, refreshButton),
		a.pathEntry,
	)

	buttons := container.NewHBox(
		widget.NewButton("Launch", func() { a.launchSelected() }),
		widget.NewButton("Rename", func() { a.renameSelected() }),
		widget.NewButton("Make Torrent", func() { a.showMakeTorrentNotice() }),
		widget.NewButton("Settings", func() { a.showSettingsDialog() }),
		widget.NewButton("History", func() { a.showHistoryDialog() }),
	)

	split := container.NewHSplit(a.tree, a.entryList)
	split.SetOffset(0.35)

	a.mainWindow.SetContent(container.NewBorder(
		toolbar,
		container.NewVBox(buttons, a.status),
		nil, nil,
		split,
	))
	a.mainWindow.Resize(fyne.NewSize(960, 640))

	a.refreshEntries()
	if !a.dirTree.Empty() {
		a.tree.OpenBranch(a.dirTree.Root().Path)
	}
}

// treeChildIDs feeds the tree widget. Node ids are directory paths; the
// virtual root "" has the base path as its only child.
func (a *App) treeChildIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	if id == "" {
		if a.dirTree.Empty() {
			return nil
		}
		return []widget.TreeNodeID{a.dirTree.Root().Path}
	}
	return childPaths(a.dirTree, id)
}

func (a *App) treeIsBranch(id widget.TreeNodeID) bool {
	if id == "" {
		return true
	}
	return hasSubdirs(a.dirTree, id)
}

// showDirectory switches the listing to path. With the missing filter on
// the listing tracks the logs, so only the remembered directory changes.
func (a *App) showDirectory(path string) {
	a.currentDir = path
	if a.missingOnly {
		return
	}
	a.refreshEntries()
}

func (a *App) refreshEntries() {
	entries, err := a.engine.List(a.currentDir, types.Filter{MissingOnly: a.missingOnly})
	a.entries = entries
	a.selected = -1
	a.entryList.UnselectAll()
	a.entryList.Refresh()

	if err != nil {
		a.status.SetText(errors.UserMessage(err))
		return
	}
	if a.missingOnly {
		a.status.SetText(fmt.Sprintf("%d missing items", len(entries)))
		return
	}
	a.status.SetText(fmt.Sprintf("%d entries in %s", len(entries), a.currentDir))
}

// reload re-reads the tree and the listing from disk.
func (a *App) reload() {
	a.dirTree.Refresh(a.dirTree.Root())
	a.tree.Refresh()
	a.refreshEntries()
}

func (a *App) chooseBasePath() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.Path()
		if err := a.cfg.Set(config.SectionPaths, config.KeyTorrentsDir, path); err != nil {
			a.ShowError("Settings not saved", err)
			return
		}
		a.setBasePath(path)
	}, a.mainWindow)
}

// setBasePath re-roots the tree and shows the new base directory.
func (a *App) setBasePath(path string) {
	a.dirTree.SetBasePath(path)
	a.pathEntry.SetText(path)
	a.tree.Refresh()
	if !a.dirTree.Empty() {
		a.tree.OpenBranch(a.dirTree.Root().Path)
	}
	a.showDirectory(path)
}

// selectedEntry returns the listing selection, nil when nothing is
// selected.
func (a *App) selectedEntry() *types.Entry {
	return a.resolver.Resolve(a.entries, a.selected)
}

func (a *App) launchSelected() {
	entry := a.selectedEntry()
	if entry == nil {
		a.ShowInfo("Nothing selected")
		return
	}
	if err := a.resolver.Launchable(entry); err != nil {
		a.ShowError("Cannot launch", err)
		return
	}
	a.showLaunchDialog(entry)
}

func (a *App) renameSelected() {
	entry := a.selectedEntry()
	if entry == nil {
		a.ShowInfo("Nothing selected")
		return
	}
	if !entry.Navigable() {
		a.ShowError("Cannot rename", errors.NewUnsupportedError("rename"))
		return
	}
	a.showRenameDialog(entry)
}

// ShowError logs err and surfaces it in an error dialog.
func (a *App) ShowError(message string, err error) {
	log.Errorf("%s: %v", message, err)
	dialog.ShowError(fmt.Errorf("%s: %w", message, err), a.mainWindow)
}

// ShowInfo surfaces message in an information dialog.
func (a *App) ShowInfo(message string) {
	log.Info(message)
	dialog.ShowInformation("Info", message, a.mainWindow)
}
