package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryListDocs bool

var queryCmd = &cobra.Command{
	Use:   "query <document-id> <question>",
	Short: "Ask a question against an ingested document",
	Args: func(cmd *cobra.Command, args []string) error {
		if queryListDocs {
			return nil
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		comps, err := buildComponents(cfg)
		if err != nil {
			return err
		}
		defer comps.close()

		if queryListDocs {
			docs := comps.ingest.List()
			if len(docs) == 0 {
				fmt.Println("no documents ingested")
				return nil
			}
			for _, doc := range docs {
				fmt.Printf("%s  %-30s  %s  %d chunks\n", doc.ID, doc.Filename, doc.Type, doc.ChunkCount)
			}
			return nil
		}

		docID := args[0]
		question := strings.Join(args[1:], " ")

		answer, err := comps.query.Query(context.Background(), docID, question)
		if err != nil {
			return err
		}

		fmt.Println(answer.Text)
		fmt.Printf("\nconfidence: %.2f\n", answer.Confidence)
		for _, src := range answer.Sources {
			fmt.Printf("  [%s] score %.3f: %s\n", src.Label, src.Score, src.Text)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVarP(&queryListDocs, "list", "l", false, "list ingested documents instead of querying")
}
