package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRoot().ExecuteContext(context.Background())
}

func NewRoot() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:          "pitchcraft",
		Short:        "Sales pitch narratives, DISC profiling, objections and slide decks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(
		ServeCmd(&envFile),
		NarrativeCmd(&envFile),
		DiscCmd(&envFile),
		ObjectionsCmd(&envFile),
		SlidesCmd(&envFile),
		EnrichCmd(&envFile),
		CRMCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
