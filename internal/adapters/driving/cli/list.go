package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/novella-cli/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List novels in the library",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	novels, err := libraryService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing library: %w", err)
	}

	if listJSON {
		return outputListJSON(cmd, novels)
	}

	return outputListTable(cmd, novels)
}

func outputListJSON(cmd *cobra.Command, novels []domain.Novel) error {
	data, err := json.MarshalIndent(novels, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding novels: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputListTable(cmd *cobra.Command, novels []domain.Novel) error {
	if len(novels) == 0 {
		cmd.Println("Library is empty. Import a novel with: novella import <path>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLAST READ")

	for _, novel := range novels {
		lastRead := "never"
		if !novel.LastReadAt.IsZero() {
			lastRead = novel.LastReadAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", novel.ID, novel.Title, lastRead)
	}

	return w.Flush()
}
