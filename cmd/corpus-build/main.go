// Command corpus-build maintains a SQLite unigram corpus of text and HTML
// documents. The corpus supplies the inverse document frequencies used by the
// TF-IDF based measures.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cognicore/tokensim/internal/logging"
	"github.com/cognicore/tokensim/pkg/tokensim/config"
	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/corpus/sqlite"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corpus-build",
		Short: "Build a document-frequency corpus for TF-IDF measures",
		Long: `corpus-build tokenizes text and HTML documents into a SQLite corpus.

Documents are tokenized with the tokenizer from the tokensim configuration
file, so the corpus matches the measures that will query it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("db", "corpus.db", "SQLite corpus path")
	rootCmd.PersistentFlags().String("config", "", "tokensim YAML configuration")
	rootCmd.PersistentFlags().String("stoplist", "", "Stoplist YAML with extra stopwords")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the configuration")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAddCmd(),
		newIDFCmd(),
		newStatsCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corpus-build version %s\n", version)
		},
	}
}

// openCorpus loads the configuration named by the persistent flags and opens
// the SQLite corpus with the configured tokenizer.
func openCorpus(cmd *cobra.Command) (*corpus.Corpus, *slog.Logger, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	cfgPath, _ := cmd.Flags().GetString("config")
	stoplist, _ := cmd.Flags().GetString("stoplist")
	level, _ := cmd.Flags().GetString("log-level")

	loader := &config.Loader{ConfigPath: cfgPath, StoplistPath: stoplist}
	comp, err := loader.Load(nil)
	if err != nil {
		return nil, nil, err
	}
	if level == "" {
		level = comp.Config.Logging.Level
	}
	logger := logging.New(level, cmd.ErrOrStderr())

	store, err := sqlite.OpenSQLite(cmd.Context(), dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus %s: %w", dbPath, err)
	}
	c, err := corpus.New(store, comp.Tokenizer, corpus.WithLogger(logger))
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Debug("corpus opened", "db", dbPath, "config", cfgPath)
	return c, logger, nil
}
