//go:build !windows

package dispatch

// Terminal candidates in preference order. Each one runs the command
// through bash with a trailing read so the window stays open for the
// operator after the tool exits.
var strategies = []strategy{
	{binary: "gnome-terminal", wrap: func(cmd Command) []string {
		return []string{"--", "bash", "-c", holdLine(cmd)}
	}},
	{binary: "xterm", wrap: func(cmd Command) []string {
		return []string{"-e", "bash", "-c", holdLine(cmd)}
	}},
	{binary: "konsole", wrap: func(cmd Command) []string {
		return []string{"-e", "bash", "-c", holdLine(cmd)}
	}},
	{binary: "terminator", wrap: func(cmd Command) []string {
		return []string{"-e", "bash", "-c", holdLine(cmd)}
	}},
}

func holdLine(cmd Command) string {
	return cmd.Line() + `; read -p "Press Enter to continue..."`
}
