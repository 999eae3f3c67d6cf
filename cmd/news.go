package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"alchemy/internal/clix"
	"alchemy/pkg/alchemydatanews"
)

var (
	newsStart string
	newsEnd   string
	newsCount int
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Search AlchemyData News",
	Example: `  alchemy news --start now-1d --end now --count 5 \
    --return enriched.url.title,enriched.url.url --filter enriched.url.title=IBM`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := clix.ParseList(cmd.Flags(), "return")
		if err != nil {
			return err
		}
		filters, err := clix.ParseFilters(cmd.Flags(), "filter")
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		rec, err := appInstance.AnalysisService.News(cmd.Context(), alchemydatanews.NewsQuery{
			Start:   newsStart,
			End:     newsEnd,
			Count:   newsCount,
			Return:  fields,
			Filters: filters,
		})
		if err != nil {
			if rec != nil {
				return fmt.Errorf("news search failed (analysis %s): %w", rec.ID, err)
			}
			return err
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

func init() {
	newsCmd.Flags().StringVar(&newsStart, "start", "now-1d", "start of the time window")
	newsCmd.Flags().StringVar(&newsEnd, "end", "now", "end of the time window")
	newsCmd.Flags().IntVar(&newsCount, "count", 10, "maximum number of documents")
	newsCmd.Flags().String("return", "enriched.url.title,enriched.url.url", "comma-separated fields to return")
	newsCmd.Flags().StringArray("filter", nil, "query filter as field=value (repeatable); q. prefix is optional")
	rootCmd.AddCommand(newsCmd)
}
