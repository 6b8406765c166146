package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragsynth/go-ragsynth/synthesizer"
)

var queryMode string

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Answer a question from the stored documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := synthesizer.ResponseMode(queryMode)
		if !mode.IsValid() {
			return fmt.Errorf("%w: %q", synthesizer.ErrInvalidMode, queryMode)
		}

		a, err := newApp(rootDir)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()

		docs, err := a.docs.GetAllDocuments(ctx)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("store is empty; run `ragsynth add` first")
		}

		queryStr := args[0]
		nodes := a.retriever.Retrieve(queryStr, docs)
		a.logger.Info("retrieved documents",
			"query", queryStr, "index", a.cfg.IndexType, "hits", len(nodes))

		sctx, err := a.serviceContext()
		if err != nil {
			return err
		}
		builder, err := synthesizer.GetResponseBuilder(mode, sctx, nil, nil)
		if err != nil {
			return err
		}

		resp, err := synthesizer.Synthesize(ctx, builder, queryStr, nodes)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.String())
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", string(synthesizer.ResponseModeCompact), "response mode")
}
