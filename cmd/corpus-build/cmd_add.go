package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
)

var htmlExts = map[string]bool{".html": true, ".htm": true, ".xhtml": true}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add PATH...",
		Short: "Add text or HTML documents to the corpus",
		Long: `Add every file named on the command line to the corpus. Directories are
walked recursively. Files ending in .html, .htm or .xhtml are stripped to
their visible text first; everything else is read as plain text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exts, _ := cmd.Flags().GetStringSlice("ext")
			c, logger, err := openCorpus(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			files, err := collectFiles(args, exts)
			if err != nil {
				return err
			}

			added := 0
			for _, path := range files {
				if err := cmd.Context().Err(); err != nil {
					return fmt.Errorf("interrupted after %d documents: %w", added, err)
				}
				id, err := addFile(cmd, c, path)
				if err != nil {
					return fmt.Errorf("add %s: %w", path, err)
				}
				added++
				logger.Debug("document added", "path", path, "id", id)
			}

			total, err := c.DocumentCount(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("corpus updated", "added", added, "documents", total)
			fmt.Fprintf(cmd.OutOrStdout(), "added %d documents (%d total)\n", added, total)
			return nil
		},
	}
	cmd.Flags().StringSlice("ext", nil, "Only add files with these extensions when walking directories (e.g. .txt,.html)")
	return cmd
}

func addFile(cmd *cobra.Command, c *corpus.Corpus, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if htmlExts[strings.ToLower(filepath.Ext(path))] {
		return c.AddHTML(cmd.Context(), f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return c.AddDocument(cmd.Context(), string(data))
}

// collectFiles expands directories into their regular files in lexical
// order. Explicit file arguments are always kept.
func collectFiles(paths []string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			if len(allowed) > 0 && !allowed[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
