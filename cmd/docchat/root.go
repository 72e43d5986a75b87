package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var environment string

var (
	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with documents indexed from Google Drive and SharePoint",
	Long: `Ask questions about the documents indexed by a Pathway retrieval service
from the terminal. Every answer lists the documents it was built from.

Quick Start:
  docchat chat                      # Start a conversation
  docchat chat --save chat.md       # Keep the transcript when you leave
  docchat files                     # Show what is indexed`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&environment, "env", "e", os.Getenv("APP_ENV"), "Environment whose .env.<env> file is loaded")
}
