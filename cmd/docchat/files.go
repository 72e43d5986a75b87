package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/builder"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the indexed documents",
	Long:  `List the documents the retrieval service has indexed, and where to upload new ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := builder.BuildComponents(environment)
		if err != nil {
			return err
		}
		defer c.Logger.Sync() //nolint:errcheck

		ctx := ctxzap.ToContext(cmd.Context(), c.Logger)
		fileTable, err := c.Files.Table(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printFileTable(out, fileTable)
		printSources(out, c.Files.Info())
		return nil
	},
}

func printFileTable(out io.Writer, ft *entity.FileTable) {
	if len(ft.Rows) == 0 {
		fmt.Fprintln(out, hintStyle.Render("No documents are indexed yet."))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(ft.Columns...).
		Rows(ft.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("%d documents", len(ft.Rows))))
}

func printSources(out io.Writer, info entity.WorkspaceInfo) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Upload your documents here: "+info.UploadURL)
	fmt.Fprintln(out, hintStyle.Render(info.BackendCaption))
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
