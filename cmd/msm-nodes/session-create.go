package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCreateCmd = &cobra.Command{
	Use:   "create <session-id>...",
	Short: "append a node id to session ids",
	Long:  "append the node id chosen for each session id, skipping unavailable nodes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  sessionCreateRun,
}

func sessionCreateRun(cmd *cobra.Command, args []string) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}
	for _, sessionId := range args {
		fmt.Fprintln(cmd.OutOrStdout(), manager.CreateSessionId(sessionId))
	}
	return nil
}
