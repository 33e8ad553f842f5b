package app

import (
	"strings"

	"github.com/google/shlex"
)

// SplitArgs splits a command line using shell quoting rules.
func SplitArgs(line string) ([]string, error) {
	return shlex.Split(line)
}

// JoinArgs quotes args so that SplitArgs returns them unchanged.
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\r\n'\"\\#") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
