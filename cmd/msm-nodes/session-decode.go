package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionDecodeCmd = &cobra.Command{
	Use:   "decode <session-id>",
	Short: "print the parts of a session id",
	Long:  "print the original session id, node id and route of a session id",
	Args:  cobra.ExactArgs(1),
	RunE:  sessionDecodeRun,
}

func sessionDecodeRun(cmd *cobra.Command, args []string) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}
	format := manager.GetSessionIdFormat()
	sessionId := args[0]
	base, nodeId, _ := format.Decode(sessionId)
	route, _ := format.ExtractJvmRoute(sessionId)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "base: %s\n", format.StripJvmRoute(base))
	fmt.Fprintf(out, "nodeId: %s\n", nodeId)
	fmt.Fprintf(out, "jvmRoute: %s\n", route)
	fmt.Fprintf(out, "valid: %v\n", manager.IsValidForMemcached(sessionId))
	if nodeId != "" {
		fmt.Fprintf(out, "availability: %s\n", manager.NodeAvailability(nodeId))
	}
	return nil
}
