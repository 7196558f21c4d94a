package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twitter/lineup/search/config"
)

type presetsCmd struct {
	printAsJSON bool
}

func (p *presetsCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "presets",
		Short: "List the named search configurations",
	}
	r.Flags().BoolVar(&p.printAsJSON, "json", false, "Print presets as JSON")
	return r
}

func (p *presetsCmd) run(cl *CLIClient, cmd *cobra.Command, args []string) error {
	if p.printAsJSON {
		asJSON, err := json.MarshalIndent(config.SearchConfigs, "", "  ")
		if err != nil {
			return fmt.Errorf("Error converting presets to JSON: %v", err)
		}
		fmt.Fprintf(cl.Out, "%s\n", asJSON)
		return nil
	}

	rows := make([][]string, 0, len(config.SearchConfigs))
	for _, name := range config.PresetNames() {
		c := config.SearchConfigs[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(c.MinSpend) + "-" + strconv.Itoa(c.Budget),
			strconv.FormatFloat(c.MinAcceptableScore, 'f', -1, 64),
			strconv.Itoa(c.DiversityThreshold),
			strconv.Itoa(c.TopK),
			strconv.Itoa(c.PoolSize),
			c.TimeBudget.String(),
		})
	}
	fmt.Fprintln(cl.Out, renderTable(
		[]string{"PRESET", "SALARY", "MIN SCORE", "DIVERSITY", "TOP K", "POOL", "TIME BUDGET"}, rows))
	return nil
}
