package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashbyte/rematch/internal/metrics"
)

var (
	fromStart int
	withMetrics bool

	findCmd = &cobra.Command{
		Use:   "find",
		Short: "Find the first match at or after --from-start (default 0).",
		RunE:  runFind,
	}
)

func init() {
	findCmd.Flags().IntVar(&fromStart, "from-start", 0, "start index to search from")
	findCmd.Flags().BoolVar(&withMetrics, "metrics", false, "count dispatch steps via internal/metrics")
}

func runFind(cmd *cobra.Command, args []string) error {
	entry := requestLogger("find")
	m, err := buildMatcher()
	if err != nil {
		return err
	}

	if withMetrics {
		reg := prometheusRegistry()
		collector := metrics.New(reg, "rematch_cli")
		m.Observer = collector.Observer()
	}

	var ok bool
	if fromStart == 0 {
		ok = m.Find()
	} else {
		ok, err = m.FindFrom(fromStart)
		if err != nil {
			return err
		}
	}

	entry.WithField("matched", ok).Info("find complete")
	fmt.Printf("matched: %v\n", ok)
	if ok {
		printGroups(m)
	}
	return nil
}
