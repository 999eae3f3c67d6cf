package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"alchemy/internal/render"
)

// usageCmd summarizes recorded calls per capability.
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show calls, failures and billed transactions per capability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		usage, err := appInstance.AnalysisService.Usage(cmd.Context())
		if err != nil {
			return err
		}

		if outputFmt != render.FormatTable || queryFlag != "" {
			return render.Write(cmd.OutOrStdout(), outputFmt, usage, queryFlag)
		}
		if len(usage) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No usage recorded.")
			return nil
		}

		var calls, failures, transactions int64
		rows := make([][]string, 0, len(usage)+1)
		for _, u := range usage {
			rows = append(rows, []string{
				string(u.Capability),
				strconv.FormatInt(u.Calls, 10),
				strconv.FormatInt(u.Failures, 10),
				strconv.FormatInt(u.Transactions, 10),
			})
			calls += u.Calls
			failures += u.Failures
			transactions += u.Transactions
		}
		rows = append(rows, []string{"total", strconv.FormatInt(calls, 10), strconv.FormatInt(failures, 10), strconv.FormatInt(transactions, 10)})
		render.Table(cmd.OutOrStdout(), []string{"Capability", "Calls", "Failures", "Transactions"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
