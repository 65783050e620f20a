package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"reelstore/internal/config"
	"reelstore/internal/index"
	"reelstore/internal/movies"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var collectionFlag string
	var sortFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved movies in a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := index.Collection(strings.TrimSpace(collectionFlag))
			if !collection.Valid() {
				return fmt.Errorf("unknown collection %q (use movies or assets)", collectionFlag)
			}

			return ctx.withService(func(_ *config.Config, svc *movies.Service) error {
				records, err := svc.List(cmd.Context(), collection)
				if err != nil {
					return err
				}

				switch strings.TrimSpace(sortFlag) {
				case "", "date":
					// List already returns newest first.
				case "title":
					sortByTitle(records)
				default:
					return fmt.Errorf("unknown sort key %q (use date or title)", sortFlag)
				}

				if jsonFlag {
					return writeJSON(cmd, records)
				}
				return renderRecords(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().StringVar(&collectionFlag, "collection", string(index.CollectionMovies), "Collection to list (movies or assets)")
	cmd.Flags().StringVar(&sortFlag, "sort", "date", "Sort key (date or title)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit records as JSON")
	return cmd
}

// sortByTitle orders records with locale-aware collation so accented titles
// interleave naturally instead of sorting after z.
func sortByTitle(records []*index.Record) {
	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(records, func(i, j int) bool {
		return collator.CompareString(records[i].Title, records[j].Title) < 0
	})
}

func renderRecords(out io.Writer, records []*index.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No movies found")
		return err
	}

	headers := []string{"ID", "Title", "Duration", "Scenes", "Modified"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		title := record.Title
		if title == "" {
			title = "(untitled)"
		}
		rows = append(rows, []string{
			record.ID,
			title,
			record.DurationString,
			strconv.Itoa(record.SceneCount),
			record.Date.Format("2006-01-02 15:04"),
		})
	}

	if isTerminal(out) {
		aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}
		_, err := fmt.Fprintln(out, renderTable(headers, rows, aligns))
		return err
	}

	// Plain tab-separated output when piped.
	if _, err := fmt.Fprintln(out, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(out, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
