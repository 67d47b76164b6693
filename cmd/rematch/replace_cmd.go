package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	replacement string
	replaceAll  bool

	replaceCmd = &cobra.Command{
		Use:   "replace",
		Short: "Replace matches of the program in the input with --with.",
		RunE:  runReplace,
	}
)

func init() {
	replaceCmd.Flags().StringVar(&replacement, "with", "", "replacement text, supporting $n backreferences")
	replaceCmd.Flags().BoolVar(&replaceAll, "all", true, "replace every match (false replaces only the first)")
}

func runReplace(cmd *cobra.Command, args []string) error {
	entry := requestLogger("replace")
	m, err := buildMatcher()
	if err != nil {
		return err
	}

	var out string
	if replaceAll {
		out = m.ReplaceAll(replacement)
	} else {
		out = m.ReplaceFirst(replacement)
	}

	entry.Info("replace complete")
	fmt.Println(out)
	return nil
}
