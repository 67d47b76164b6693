package main

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	programFile string
	inputArg    string

	log = logrus.New()

	root = &cobra.Command{
		Use:   "rematch",
		Short: "rematch runs an assembled bytecode program against an input string.",
		Long: "rematch is a small harness around the rematch engine.\n\n" +
			"It reads a program written in the line-oriented assembly listing\n" +
			"documented on internal/asm.Parse and runs it against an input\n" +
			"string using one of the engine's public match operations.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		},
	}
)

func init() {
	registerCommonFlags(root.PersistentFlags())
	root.MarkPersistentFlagRequired("program")
	root.MarkPersistentFlagRequired("input")

	root.AddCommand(findCmd)
	root.AddCommand(matchesCmd)
	root.AddCommand(lookingAtCmd)
	root.AddCommand(replaceCmd)
}

// registerCommonFlags binds the flags every subcommand inherits. It takes
// the *pflag.FlagSet directly, rather than going through cobra's wrapper
// methods alone, so it can turn off sorting: --help lists these flags in
// the order they are registered here rather than alphabetically.
func registerCommonFlags(fs *pflag.FlagSet) {
	fs.SortFlags = false
	fs.StringVarP(&programFile, "program", "p", "", "path to an assembly listing (required)")
	fs.StringVarP(&inputArg, "input", "i", "", "the subject string to match against (required)")
}

// requestLogger returns a logrus.Entry tagged with a fresh request id, so
// that one invocation's log lines can be told apart from another's. The
// step-counter metrics are not tagged with it.
func requestLogger(op string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"op":         op,
	})
}
