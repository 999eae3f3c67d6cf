package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"alchemy/internal/clix"
	"alchemy/internal/models"
	"alchemy/internal/render"
)

var historyCapability string

// historyCmd represents the base command for analysis history operations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past analysis calls",
	Long:  `Displays analysis calls recorded by the application, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistoryCmd.RunE(cmd, args)
	},
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analysis calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return fmt.Errorf("invalid pagination flags: %w", err)
		}
		filter := models.ListFilter{Limit: pagination.Limit, Offset: pagination.Offset}
		if historyCapability != "" {
			if filter.Capability, err = models.ParseCapability(historyCapability); err != nil {
				return err
			}
		}

		records, err := appInstance.AnalysisService.ListAnalyses(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("error listing analysis history: %w", err)
		}

		if outputFmt != render.FormatTable || queryFlag != "" {
			return render.Write(cmd.OutOrStdout(), outputFmt, records, queryFlag)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No analysis history found.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, []string{
				r.ID.String(),
				string(r.Capability),
				r.Input,
				render.Status(r.Status),
				strconv.Itoa(r.Transactions),
				strconv.FormatInt(r.DurationMs, 10) + "ms",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}
		render.Table(cmd.OutOrStdout(), []string{"ID", "Capability", "Input", "Status", "Transactions", "Duration", "Created At"}, rows)
		return nil
	},
}

var showHistoryCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded analysis and its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid analysis ID %q: %w", args[0], err)
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		rec, err := appInstance.AnalysisService.GetAnalysis(cmd.Context(), id)
		if err != nil {
			return err
		}

		if !rec.Succeeded() {
			return render.Write(cmd.OutOrStdout(), outputFmt, rec, queryFlag)
		}
		if outputFmt == render.FormatTable && queryFlag == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) %s\n\n", rec.ID, rec.Capability, rec.Input, render.Status(rec.Status))
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, listHistoryCmd} {
		c.Flags().IntP("limit", "n", 20, "Maximum number of history entries to show")
		c.Flags().Int("offset", 0, "Number of entries to skip")
		c.Flags().StringVar(&historyCapability, "capability", "", "only show calls of this capability")
	}

	historyCmd.AddCommand(listHistoryCmd, showHistoryCmd)
	rootCmd.AddCommand(historyCmd)
}
