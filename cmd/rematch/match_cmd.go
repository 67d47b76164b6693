package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Report whether the whole input matches the program, anchored at 0.",
	RunE:  runMatches,
}

var lookingAtCmd = &cobra.Command{
	Use:   "lookingat",
	Short: "Report whether a prefix of the input matches the program, anchored at 0.",
	RunE:  runLookingAt,
}

func runMatches(cmd *cobra.Command, args []string) error {
	entry := requestLogger("matches")
	m, err := buildMatcher()
	if err != nil {
		return err
	}
	ok := m.Matches()
	entry.WithField("matched", ok).Info("matches complete")
	fmt.Printf("matches: %v\n", ok)
	if ok {
		printGroups(m)
	}
	return nil
}

func runLookingAt(cmd *cobra.Command, args []string) error {
	entry := requestLogger("lookingAt")
	m, err := buildMatcher()
	if err != nil {
		return err
	}
	ok := m.LookingAt()
	entry.WithField("matched", ok).Info("lookingAt complete")
	fmt.Printf("lookingAt: %v\n", ok)
	if ok {
		printGroups(m)
	}
	return nil
}
