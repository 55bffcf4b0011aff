package main

import (
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "session id commands",
	Long:  "encode, decode and relocate node ids in session ids",
	Run:   sessionRun,
}

func sessionRun(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}

func init() {
	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionDecodeCmd)
	sessionCmd.AddCommand(sessionFailoverCmd)
}
