package main

import (
	"msm/pkg/lib/serializer"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "print the node topology",
	Long:  "print primary and failover nodes with their availability",
	Args:  cobra.NoArgs,
	RunE:  showRun,
}

var showOutput string

func showRun(cmd *cobra.Command, args []string) error {
	codec, err := serializer.ByName(showOutput)
	if err != nil {
		return err
	}
	_, manager, err := loadManager()
	if err != nil {
		return err
	}
	data, err := codec.Marshal(manager.Snapshot())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "output format: yaml, json or msgpack")
}
