package main

import (
	"os"

	"msm/pkg/glog"
)

func main() {
	defer glog.Stop()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
