package cmd

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "from-date",
			Usage: "Include commits from this date (YYYY-MM-DD or RFC 3339)",
		},
		&cli.StringFlag{
			Name:  "to-date",
			Usage: "Include commits up to this date (YYYY-MM-DD or RFC 3339)",
		},
		&cli.StringFlag{
			Name:  "author",
			Usage: "Only include commits whose author name contains this text",
		},
		&cli.StringSliceFlag{
			Name:    "category",
			Aliases: []string{"c"},
			Usage:   "Changelog section to use (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"e"},
			Usage:   "Exclude commits whose message contains this text (case-sensitive, repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "Only include commits carrying this tag (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the changelog to this file (default: stdout)",
		},
		&cli.BoolFlag{
			Name:    "preview",
			Aliases: []string{"p"},
			Usage:   "Show the selected commits without generating a changelog",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "Choose commits from a checklist",
		},
		&cli.BoolFlag{
			Name:    "silent",
			Aliases: []string{"s"},
			Usage:   "Suppress informational output",
		},
		&cli.BoolFlag{
			Name:  "hide-scores",
			Usage: "Hide impact scores in preview and interactive modes",
		},
		&cli.BoolFlag{
			Name:  "chronological",
			Usage: "Keep automatically selected commits in history order",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Preview format (console, json, csv, markdown)",
			Value: "console",
		},
		&cli.StringSliceFlag{
			Name:  "include-path",
			Usage: "Only count changes to files matching this glob (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-path",
			Usage: "Ignore changes to files matching this glob (repeatable)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Text-generation model to use",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug diagnostics to stderr",
		},
	}
}

// reorderArgs moves flags ahead of positional arguments so flags may follow
// the repository and count. args[0] is the program name.
func reorderArgs(args []string, defined []cli.Flag) []string {
	if len(args) <= 1 {
		return args
	}

	takesValue := make(map[string]bool)
	for _, f := range defined {
		_, isBool := f.(*cli.BoolFlag)
		for _, name := range f.Names() {
			takesValue[name] = !isBool
		}
	}

	var flagArgs, positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--":
			positional = append(positional, rest[i+1:]...)
			i = len(rest)
		case len(arg) > 1 && arg[0] == '-' && !isNumber(arg):
			flagArgs = append(flagArgs, arg)
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if takesValue[name] && i+1 < len(rest) {
				flagArgs = append(flagArgs, rest[i+1])
				i++
			}
		default:
			positional = append(positional, arg)
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0])
	out = append(out, flagArgs...)
	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
