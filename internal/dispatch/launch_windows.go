//go:build windows

package dispatch

// On Windows a fresh cmd window does the holding itself: /k keeps the
// window open after the tool exits. Arguments pass through untouched.
var strategies = []strategy{
	{binary: "cmd", wrap: func(cmd Command) []string {
		return append([]string{"/c", "start", "cmd", "/k"}, cmd.Argv()...)
	}},
}
