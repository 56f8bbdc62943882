//go:build !nogui

package gui

import (
	"path/filepath"
	"strings"

	"uaman/internal/config"
	"uaman/internal/dispatch"
	"uaman/internal/errors"
	"uaman/internal/history"
	"uaman/internal/log"
	"uaman/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showLaunchDialog collects the upload-assistant arguments for entry,
// prefilled from the persisted defaults, and dispatches on confirm. The
// values entered are saved back as the new defaults either way the launch
// goes.
func (a *App) showLaunchDialog(entry *types.Entry) {
	bag := dispatch.BagFromStore(a.cfg)

	inputs := make(map[types.ArgKey]*widget.Entry)
	checks := make(map[types.ArgKey]*widget.Check)
	items := make([]*widget.FormItem, 0, len(types.ArgKeys()))
	for _, key := range types.ArgKeys() {
		if key.Bool() {
			check := widget.NewCheck("", nil)
			check.SetChecked(bag.Bool(key))
			checks[key] = check
			items = append(items, widget.NewFormItem(string(key), check))
			continue
		}
		input := widget.NewEntry()
		input.SetText(bag.Value(key))
		inputs[key] = input
		items = append(items, widget.NewFormItem(string(key), input))
	}

	form := dialog.NewForm("Launch: "+entry.Name(), "Launch", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		for key, input := range inputs {
			bag.Set(key, strings.TrimSpace(input.Text))
		}
		for key, check := range checks {
			bag.SetBool(key, check.Checked)
		}
		if err := bag.SaveTo(a.cfg); err != nil {
			log.LogWithError(err).Warn("argument defaults not saved")
		}
		a.dispatch(entry, bag)
	}, a.mainWindow)
	form.Resize(fyne.NewSize(420, 600))
	form.Show()
}

// dispatch hands the built command to a terminal emulator. Without one the
// command can still run detached from this process, but its output goes
// nowhere visible, so the operator confirms first.
func (a *App) dispatch(entry *types.Entry, bag dispatch.Bag) {
	cmd := dispatch.BuildCommand(a.cfg.Paths.UploadAssistantPath, entry.Path, bag)

	if name, ok := a.dispatcher.InTerminal(cmd); ok {
		a.recordLaunch(entry.Path, cmd, name, nil)
		a.ShowInfo("Launched via " + name)
		return
	}

	dialog.ShowConfirm("No terminal emulator found",
		"Run the upload assistant in the background? Its output will not be visible.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			a.runDetached(entry.Path, cmd)
		}, a.mainWindow)
}

func (a *App) runDetached(target string, cmd dispatch.Command) {
	proc := cmd.ExecCmd()
	if err := proc.Start(); err != nil {
		lerr := errors.NewLaunchError("could not start the upload assistant", cmd.Executable, err)
		a.recordLaunch(target, cmd, dispatch.StrategyFallback, lerr)
		a.ShowError("Launch failed", lerr)
		return
	}
	// Reap the child; the GUI does not wait on it.
	go proc.Wait()

	a.recordLaunch(target, cmd, dispatch.StrategyFallback, nil)
	a.ShowInfo("Running in the background")
}

func (a *App) recordLaunch(target string, cmd dispatch.Command, strategy string, launchErr error) {
	_ = a.ledger.Record(history.Record{
		Target:   target,
		Args:     cmd.Line(),
		Strategy: strategy,
		OK:       launchErr == nil,
	})
}

// showRenameDialog renames entry within its directory.
func (a *App) showRenameDialog(entry *types.Entry) {
	input := widget.NewEntry()
	input.SetText(entry.Name())

	items := []*widget.FormItem{widget.NewFormItem("New name", input)}
	dialog.ShowForm("Rename", "Apply", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		newPath, err := a.resolver.Rename(entry, input.Text)
		if err != nil {
			a.ShowError("Rename failed", err)
			return
		}
		a.status.SetText("Renamed to " + filepath.Base(newPath))
		a.refreshEntries()
	}, a.mainWindow)
}

// showSettingsDialog edits the configured paths. Every accepted value
// persists immediately.
func (a *App) showSettingsDialog() {
	baseEntry := widget.NewEntry()
	baseEntry.SetText(a.cfg.Paths.TorrentsDir)
	logsEntry := widget.NewEntry()
	logsEntry.SetText(a.cfg.Paths.LogsDir)
	assistantEntry := widget.NewEntry()
	assistantEntry.SetText(a.cfg.Paths.UploadAssistantPath)
	patternEntry := widget.NewEntry()
	patternEntry.SetText(a.cfg.Paths.LogPattern)

	items := []*widget.FormItem{
		widget.NewFormItem("Base directory", baseEntry),
		widget.NewFormItem("Logs directory", logsEntry),
		widget.NewFormItem("Upload assistant", assistantEntry),
		widget.NewFormItem("Log pattern", patternEntry),
	}
	form := dialog.NewForm("Settings", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		updates := []struct{ key, value string }{
			{config.KeyTorrentsDir, strings.TrimSpace(baseEntry.Text)},
			{config.KeyLogsDir, strings.TrimSpace(logsEntry.Text)},
			{config.KeyUploadAssistant, strings.TrimSpace(assistantEntry.Text)},
			{config.KeyLogPattern, strings.TrimSpace(patternEntry.Text)},
		}
		for _, u := range updates {
			if u.value == "" {
				continue
			}
			if err := a.cfg.Set(config.SectionPaths, u.key, u.value); err != nil {
				a.ShowError("Settings not saved", err)
				return
			}
		}
		a.setBasePath(a.cfg.Paths.TorrentsDir)
		a.ShowInfo("Settings saved")
	}, a.mainWindow)
	form.Resize(fyne.NewSize(480, 280))
	form.Show()
}

// showHistoryDialog lists the most recent launches, newest first.
func (a *App) showHistoryDialog() {
	records, err := a.ledger.Recent(20)
	if err != nil {
		a.ShowError("History unavailable", err)
		return
	}
	if len(records) == 0 {
		a.ShowInfo("No launches recorded yet")
		return
	}

	list := widget.NewList(
		func() int {
			return len(records)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("record")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(historyLine(records[i]))
		},
	)

	d := dialog.NewCustom("Recent launches", "Close", list, a.mainWindow)
	d.Resize(fyne.NewSize(640, 400))
	d.Show()
}

func (a *App) showMakeTorrentNotice() {
	dialog.ShowInformation("Make Torrent",
		"Torrent creation will be implemented in a future version.", a.mainWindow)
}
