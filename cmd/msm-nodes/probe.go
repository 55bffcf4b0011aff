package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"msm"
	"msm/pkg/glog"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "probe memcached nodes over tcp",
	Long:  "probe memcached nodes once, or periodically until interrupted with --watch",
	Args:  cobra.NoArgs,
	RunE:  probeRun,
}

var probeWatch bool

func probeRun(cmd *cobra.Command, args []string) error {
	cfg, manager, err := loadManager()
	if err != nil {
		return err
	}
	prober := msm.NewProber(cfg, manager)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed := prober.ProbeOnce(ctx)
	printAvailability(cmd, manager.GetPrimaryNodeIds().Ids(), manager.GetFailoverNodeIds(), manager.IsNodeAvailable)
	if len(changed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "changed: %s\n", strings.Join(changed, ", "))
	}
	if !probeWatch {
		return nil
	}

	prober.Start(ctx)
	<-ctx.Done()
	prober.Stop()
	glog.Info("探活结束")
	return nil
}

func printAvailability(cmd *cobra.Command, primary, failover []string, available func(string) bool) {
	out := cmd.OutOrStdout()
	for _, id := range primary {
		fmt.Fprintf(out, "%s\tprimary\t%v\n", id, available(id))
	}
	for _, id := range failover {
		fmt.Fprintf(out, "%s\tfailover\t%v\n", id, available(id))
	}
}

func init() {
	probeCmd.Flags().BoolVarP(&probeWatch, "watch", "w", false, "keep probing every probe.interval until interrupted")
}
