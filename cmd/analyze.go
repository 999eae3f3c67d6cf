package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"alchemy/internal/models"
	"alchemy/internal/render"
	"alchemy/pkg/alchemydatanews"
	"alchemy/pkg/alchemylanguage"
	"alchemy/pkg/languagetranslation"
)

var knowledgeGraph bool

// newCapabilityCmd builds the command for one URL capability.
func newCapabilityCmd(capability models.Capability, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(capability) + " <url>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, models.AnalysisRequest{
				Capability:     capability,
				URL:            args[0],
				KnowledgeGraph: knowledgeGraph,
			})
		},
	}
	if capability.SupportsKnowledgeGraph() {
		c.Flags().BoolVar(&knowledgeGraph, "knowledge-graph", false, "include knowledge graph type hierarchies")
	}
	return c
}

func runAnalysis(cmd *cobra.Command, req models.AnalysisRequest) error {
	appInstance, err := GetAppFromContext(cmd.Context())
	if err != nil {
		return err
	}
	rec, err := appInstance.AnalysisService.Analyze(cmd.Context(), req)
	if err != nil {
		if rec != nil {
			return fmt.Errorf("%s failed (analysis %s): %w", req.Capability, rec.ID, err)
		}
		return err
	}
	return printRecord(cmd.OutOrStdout(), rec)
}

// printRecord writes the result of a successful record in the selected format.
func printRecord(w io.Writer, rec *models.AnalysisRecord) error {
	view, err := resultView(rec)
	if err != nil {
		return err
	}
	return render.Write(w, outputFmt, view, queryFlag)
}

// resultView decodes the stored result back into its model so it renders
// with the model's own table layout where one exists.
func resultView(rec *models.AnalysisRecord) (interface{}, error) {
	var target interface{}
	switch rec.Capability {
	case models.CapabilityKeywords:
		target = &keywordsView{}
	case models.CapabilityEntities:
		target = &entitiesView{}
	case models.CapabilityConcepts:
		target = &conceptsView{}
	case models.CapabilityNews:
		target = &newsView{}
	case models.CapabilityTranslate:
		target = &translationView{}
	default:
		var generic interface{}
		if err := json.Unmarshal(rec.Result, &generic); err != nil {
			return nil, fmt.Errorf("decode stored %s result: %w", rec.Capability, err)
		}
		if outputFmt != render.FormatTable {
			return generic, nil
		}
		return render.Flatten(generic)
	}
	if err := json.Unmarshal(rec.Result, target); err != nil {
		return nil, fmt.Errorf("decode stored %s result: %w", rec.Capability, err)
	}
	return target, nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func sentimentType(s *alchemylanguage.Sentiment) string {
	if s == nil {
		return ""
	}
	return str(s.Type)
}

type keywordsView struct{ alchemylanguage.Keywords }

func (v *keywordsView) Headers() []string { return []string{"Keyword", "Relevance", "Sentiment"} }
func (v *keywordsView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Keywords.Keywords))
	for _, k := range v.Keywords.Keywords {
		rows = append(rows, []string{str(k.Text), num(k.Relevance), sentimentType(k.Sentiment)})
	}
	return rows
}

type entitiesView struct{ alchemylanguage.Entities }

func (v *entitiesView) Headers() []string { return []string{"Entity", "Type", "Relevance", "Count"} }
func (v *entitiesView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Entities.Entities))
	for _, e := range v.Entities.Entities {
		count := ""
		if e.Count != nil {
			count = strconv.Itoa(*e.Count)
		}
		rows = append(rows, []string{str(e.Text), str(e.Type), num(e.Relevance), count})
	}
	return rows
}

type conceptsView struct{ alchemylanguage.ConceptResponse }

func (v *conceptsView) Headers() []string { return []string{"Concept", "Relevance", "DBpedia"} }
func (v *conceptsView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Concepts))
	for _, c := range v.Concepts {
		rows = append(rows, []string{str(c.Text), num(c.Relevance), str(c.DBpedia)})
	}
	return rows
}

type newsView struct{ alchemydatanews.NewsResponse }

func (v *newsView) Headers() []string { return []string{"ID", "Title", "URL"} }
func (v *newsView) Rows() [][]string {
	if v.Result == nil {
		return nil
	}
	rows := make([][]string, 0, len(v.Result.Docs))
	for _, d := range v.Result.Docs {
		rows = append(rows, []string{str(d.ID), str(d.Title), str(d.URL)})
	}
	return rows
}

type translationView struct {
	languagetranslation.TranslateResponse
}

func (v *translationView) Headers() []string { return []string{"#", "Translation"} }
func (v *translationView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Translations))
	for i, t := range v.Translations {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Translation})
	}
	return rows
}
