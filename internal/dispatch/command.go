// Package dispatch turns an argument bag into the upload-assistant command
// line and starts it, preferring a new terminal window so the tool's output
// outlives this process, with a synchronous in-session fallback.
package dispatch

import (
	"os"
	"os/exec"
	"strings"

	"uaman/internal/errors"
	"uaman/internal/log"
	"uaman/pkg/types"
)

// StrategyFallback is the strategy name reported when no terminal emulator
// was available and the command ran in the caller's own session.
const StrategyFallback = "fallback"

// Command is one fully built invocation of the external tool. BuildCommand
// assembles it; nothing mutates it afterwards.
type Command struct {
	Executable string
	Positional []string
	Flags      []string
}

// BuildCommand assembles the launch command for target: the positional
// target first, then one switch or value pair per declared argument key, in
// declared order. Boolean keys emit only when true, string keys only when
// non-empty after trimming.
func BuildCommand(executable, target string, bag Bag) Command {
	flags := make([]string, 0, 2*len(bag))
	for _, key := range types.ArgKeys() {
		raw, ok := bag[key]
		if !ok {
			continue
		}
		if key.Bool() {
			if raw == "true" {
				flags = append(flags, key.Flag())
			}
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		flags = append(flags, key.Flag(), value)
	}

	return Command{
		Executable: executable,
		Positional: []string{target},
		Flags:      flags,
	}
}

// Argv returns the complete argument vector, executable first.
func (c Command) Argv() []string {
	argv := make([]string, 0, 1+len(c.Positional)+len(c.Flags))
	argv = append(argv, c.Executable)
	argv = append(argv, c.Positional...)
	argv = append(argv, c.Flags...)
	return argv
}

// Line renders the command as a single Bourne-shell line, quoting arguments
// the shell would otherwise pick apart. Used for display, for history, and
// for the terminal wrappers.
func (c Command) Line() string {
	quoted := make([]string, 0, 1+len(c.Positional)+len(c.Flags))
	for _, arg := range c.Argv() {
		quoted = append(quoted, shellQuote(arg))
	}
	return strings.Join(quoted, " ")
}

func (c Command) String() string {
	return c.Line()
}

// ExecCmd returns a fresh exec.Cmd running the command directly, without a
// terminal wrapper. Front ends that hand over their own terminal use this.
func (c Command) ExecCmd() *exec.Cmd {
	argv := c.Argv()
	return exec.Command(argv[0], argv[1:]...)
}

// shellQuote single-quotes arg when it contains anything a shell would
// interpret.
func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$`&|;<>()*?!~#{}[]") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}

// strategy is one way of opening the command in a new terminal window. The
// per-OS candidate sets live in launch_unix.go and launch_windows.go.
type strategy struct {
	binary string
	wrap   func(cmd Command) []string
}

// Dispatcher starts built commands.
type Dispatcher struct{}

// Launch starts cmd in a new terminal window, trying each candidate
// emulator in preference order, and reports the name of the one that
// started. A candidate that is not installed advances the chain; a spawned
// window that later fails is still a successful dispatch, the operator sees
// the failure in that window. With no candidate available the command runs
// synchronously in the caller's session and the strategy is "fallback".
func (d Dispatcher) Launch(cmd Command) (string, error) {
	if name, ok := d.InTerminal(cmd); ok {
		return name, nil
	}
	return d.RunHere(cmd)
}

// InTerminal runs just the terminal chain: it reports the name of the
// emulator that took the command, or false when every candidate was
// unavailable. Callers with their own fallback (an interactive front end
// handing over its screen) use this instead of Launch.
func (Dispatcher) InTerminal(cmd Command) (string, bool) {
	for _, strat := range strategies {
		path, err := exec.LookPath(strat.binary)
		if err != nil {
			continue
		}
		proc := exec.Command(path, strat.wrap(cmd)...)
		if err := proc.Start(); err != nil {
			log.With(log.F("terminal", strat.binary), log.F("error", err.Error())).Warn("terminal failed to start")
			continue
		}
		// Fire and forget; the goroutine only reaps the child.
		go proc.Wait()

		log.With(log.F("terminal", strat.binary), log.F("command", cmd.Line())).Info("launched in terminal")
		return strat.binary, true
	}
	return "", false
}

// RunHere runs cmd synchronously in the caller's session with inherited
// stdio. A command that starts and exits non-zero is a successful dispatch;
// only failing to start at all is an error.
func (Dispatcher) RunHere(cmd Command) (string, error) {
	log.With(log.F("command", cmd.Line())).Info("running in current session")

	proc := cmd.ExecCmd()
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	return FallbackOutcome(cmd.Executable, proc.Run())
}

// FallbackOutcome classifies the error from running cmd in the caller's own
// session. A tool that started and exited non-zero already put its failure
// on the operator's screen, so only failing to start at all is a dispatch
// error.
func FallbackOutcome(executable string, err error) (string, error) {
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", errors.NewLaunchError("could not start the upload assistant", executable, err)
		}
	}
	return StrategyFallback, nil
}
