package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionFailoverCmd = &cobra.Command{
	Use:   "failover <session-id>",
	Short: "relocate a session id away from an unavailable node",
	Long:  "print the session id pointing at the next available node, combine with --down to mark nodes unavailable",
	Args:  cobra.ExactArgs(1),
	RunE:  sessionFailoverRun,
}

func sessionFailoverRun(cmd *cobra.Command, args []string) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}
	sessionId := args[0]
	if newSessionId, ok := manager.NewSessionIdIfNodeUnavailable(sessionId); ok {
		fmt.Fprintln(cmd.OutOrStdout(), newSessionId)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), sessionId)
	return nil
}
