package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

var (
	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type rootOptions struct {
	server    string
	tokenFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "wizardctl",
		Short: "Talk to a WeatherWizard server from the terminal",
		Long: `wizardctl is a small client for the WeatherWizard chat API.

Quick Start:
  wizardctl chat                          # interactive session
  wizardctl chat "weather in Berlin"      # single turn
  wizardctl history                       # show this session's turns
  wizardctl reset                         # forget the pending question`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("WIZARD_SERVER", defaultServer), "WeatherWizard base URL")
	cmd.PersistentFlags().StringVar(&opts.tokenFile, "token-file", defaultTokenFile(), "File that keeps the session token between runs")

	cmd.AddCommand(newChatCmd(opts), newResetCmd(opts), newHistoryCmd(opts))
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wizardctl-session"
	}
	return filepath.Join(dir, "wizardctl", "session")
}
