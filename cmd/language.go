package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alchemy/internal/htmlinput"
	"alchemy/internal/models"
)

var (
	authorsHTMLFile string
	authorsURL      string
)

// authorsCmd accepts either a URL argument or a local HTML file.
var authorsCmd = &cobra.Command{
	Use:   "authors [url]",
	Short: "Extract the authors of a web page or a local HTML file",
	Example: `  alchemy authors http://example.com/article
  alchemy authors --html article.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.AnalysisRequest{Capability: models.CapabilityAuthors, URL: authorsURL}
		if len(args) == 1 {
			req.URL = args[0]
		}
		if authorsHTMLFile != "" {
			doc, err := htmlinput.Load(authorsHTMLFile)
			if err != nil {
				return err
			}
			req.HTML = doc.Raw
			if req.URL == "" {
				req.URL = doc.URL
			}
			log.WithFields(log.Fields{"file": authorsHTMLFile, "title": doc.Title, "url": req.URL}).Debug("Loaded HTML input")
		}
		return runAnalysis(cmd, req)
	},
}

func init() {
	authorsCmd.Flags().StringVar(&authorsHTMLFile, "html", "", "read the document from a local HTML file")
	authorsCmd.Flags().StringVar(&authorsURL, "url", "", "source URL sent along with --html")

	rootCmd.AddCommand(
		authorsCmd,
		newCapabilityCmd(models.CapabilityConcepts, "Tag the concepts of a web page"),
		newCapabilityCmd(models.CapabilityEntities, "Extract the named entities of a web page"),
		newCapabilityCmd(models.CapabilityKeywords, "Extract the ranked keywords of a web page"),
		newCapabilityCmd(models.CapabilityLanguage, "Detect the language of a web page"),
		newCapabilityCmd(models.CapabilityMicroformats, "Extract the microformat data of a web page"),
		newCapabilityCmd(models.CapabilityPubDate, "Extract the publication date of a web page"),
		newCapabilityCmd(models.CapabilitySentiment, "Analyze the document sentiment of a web page"),
		newCapabilityCmd(models.CapabilityRelations, "Extract subject-action-object relations (not supported by this client)"),
	)
}
