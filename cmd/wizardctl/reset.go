package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the pending clarification for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetSession(cmd, newAPIClient(opts.server), opts.tokenFile)
		},
	}
}

func resetSession(cmd *cobra.Command, client *apiClient, tokenFile string) error {
	token, err := loadToken(tokenFile)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no session to reset"))
		return nil
	}
	if err := client.Reset(cmd.Context(), token); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("session reset"))
	return nil
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded turns of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := loadToken(opts.tokenFile)
			if err != nil {
				return err
			}
			if token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no session yet, start one with `wizardctl chat`"))
				return nil
			}
			reply, err := newAPIClient(opts.server).Turns(cmd.Context(), token, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, turn := range reply.Turns {
				fmt.Fprintln(out, dimStyle.Render(turn.CreatedAt.Local().Format(time.Kitchen))+" "+userStyle.Render("you> ")+turn.Utterance)
				fmt.Fprintln(out, "        "+botStyle.Render("wizard> ")+turn.Response)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of turns to show")
	return cmd
}
