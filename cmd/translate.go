package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alchemy/internal/htmlinput"
	"alchemy/internal/textsplit"
	"alchemy/internal/util"
	"alchemy/pkg/languagetranslation"
)

var (
	translateSource   string
	translateTarget   string
	translateModelID  string
	translateFile     string
	translateHTMLFile string
	translateSplit    bool
	translateMaxChars int
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text with the Language Translation service",
	Long: `Translates each argument as a separate text. Input can also come from a
plain text file (--file) or the visible text of an HTML page (--html).
With --split the input is broken into sentences and sent in batches.`,
	Example: `  alchemy translate --source en --target es "Hello world"
  alchemy translate --model-id en-fr --html page.html --split`,
	RunE: func(cmd *cobra.Command, args []string) error {
		texts, err := translateInput(args)
		if err != nil {
			return err
		}
		if translateSplit {
			texts = textsplit.Batch(textsplit.Sentences(strings.Join(texts, "\n")), translateMaxChars)
		}
		if len(texts) == 0 {
			return fmt.Errorf("nothing to translate: pass text arguments, --file or --html")
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		rec, err := appInstance.AnalysisService.Translate(cmd.Context(), languagetranslation.TranslateRequest{
			Text:    texts,
			ModelID: translateModelID,
			Source:  translateSource,
			Target:  translateTarget,
		})
		if err != nil {
			if rec != nil {
				return fmt.Errorf("translate failed (analysis %s): %w", rec.ID, err)
			}
			return err
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

func translateInput(args []string) ([]string, error) {
	texts := append([]string{}, args...)
	if translateFile != "" {
		text, err := util.ReadTextFile(translateFile)
		if err != nil {
			return nil, err
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	if translateHTMLFile != "" {
		doc, err := htmlinput.Load(translateHTMLFile)
		if err != nil {
			return nil, err
		}
		texts = append(texts, doc.Text)
	}
	return texts, nil
}

func init() {
	translateCmd.Flags().StringVar(&translateSource, "source", "", "source language, e.g. en")
	translateCmd.Flags().StringVar(&translateTarget, "target", "", "target language, e.g. es")
	translateCmd.Flags().StringVar(&translateModelID, "model-id", "", "translation model, e.g. en-es (overrides --source/--target)")
	translateCmd.Flags().StringVar(&translateFile, "file", "", "read text from a file")
	translateCmd.Flags().StringVar(&translateHTMLFile, "html", "", "translate the visible text of a local HTML file")
	translateCmd.Flags().BoolVar(&translateSplit, "split", false, "split input into sentences before translating")
	translateCmd.Flags().IntVar(&translateMaxChars, "batch-chars", 1000, "with --split, join sentences into texts of at most this many bytes")
	rootCmd.AddCommand(translateCmd)
}
