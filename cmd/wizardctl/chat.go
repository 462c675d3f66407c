package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message, or start an interactive chat when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(opts.server)
			if len(args) > 0 {
				return sendTurn(cmd, client, opts.tokenFile, strings.Join(args, " "))
			}
			return repl(cmd, client, opts.tokenFile)
		},
	}
}

func repl(cmd *cobra.Command, client *apiClient, tokenFile string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, dimStyle.Render("Ask about the weather. /reset forgets the pending question, /quit leaves."))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, userStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := resetSession(cmd, client, tokenFile); err != nil {
				printError(out, err)
			}
			continue
		}
		if err := sendTurn(cmd, client, tokenFile, line); err != nil {
			printError(out, err)
		}
	}
}

func sendTurn(cmd *cobra.Command, client *apiClient, tokenFile, message string) error {
	token, err := loadToken(tokenFile)
	if err != nil {
		return err
	}
	reply, err := client.Send(cmd.Context(), token, message)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized && token != "" {
		// stale token, start over with a fresh session
		if err := clearToken(tokenFile); err != nil {
			return err
		}
		reply, err = client.Send(cmd.Context(), "", message)
	}
	if err != nil {
		return err
	}
	if err := saveToken(tokenFile, reply.SessionToken); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), botStyle.Render("wizard> ")+reply.Message)
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}
