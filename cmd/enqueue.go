package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"alchemy/internal/models"
	"alchemy/internal/render"
	"alchemy/internal/store"
)

var enqueueKnowledgeGraph bool

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <capability> <url>",
	Short: "Queue an analysis for the background worker",
	Long: `Queues a URL capability on Redis. A running "alchemy worker" performs the
call and records it in history.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		capability, err := models.ParseCapability(args[0])
		if err != nil {
			return err
		}
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.JobClient == nil {
			return store.ErrQueueDisabled
		}

		taskID, err := appInstance.JobClient.EnqueueAnalysis(cmd.Context(), models.AnalysisRequest{
			Capability:     capability,
			URL:            args[1],
			KnowledgeGraph: enqueueKnowledgeGraph,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s task %s\n", render.Status(models.JobStatusEnqueued), taskID)
		return nil
	},
}

func init() {
	enqueueCmd.Flags().BoolVar(&enqueueKnowledgeGraph, "knowledge-graph", false, "include knowledge graph type hierarchies")
	rootCmd.AddCommand(enqueueCmd)
}
