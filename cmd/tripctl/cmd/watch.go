package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/travelcraft/travelcraft/client"
)

var (
	interval time.Duration
	idle     time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the session alive while you type",
	Long: `Polls the heartbeat endpoint while the session is active. Each line read
from stdin counts as activity; once the idle ceiling passes without input the
session is destroyed. Interrupting the command destroys the session as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		sessions, auth := newManagers(api,
			client.WithHeartbeatInterval(interval),
			client.WithIdleCeiling(idle),
		)
		defer auth.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		changes := make(chan client.State, 4)
		unsubscribe := sessions.Subscribe(func(s client.State) {
			select {
			case changes <- s:
			default:
			}
		})
		defer unsubscribe()

		if err := sessions.Start(ctx); err != nil {
			return describe(err)
		}
		defer sessions.Close()
		if err := auth.Init(ctx); err != nil {
			return describe(err)
		}
		if auth.State() != client.AuthAuthenticated {
			return fmt.Errorf("not signed in")
		}
		user, _ := auth.User()
		fmt.Fprintf(out, "watching session of %s, idle ceiling %s\n", user.Email, idle)

		go readActivity(ctx, sessions)

		for {
			select {
			case <-ctx.Done():
				sessions.Unload()
				fmt.Fprintln(out, "session closed")
				return nil
			case s := <-changes:
				if s != client.StateInactive {
					continue
				}
				if notice, ok := auth.TakeNotice(); ok {
					fmt.Fprintln(out, notice)
				} else {
					fmt.Fprintln(out, "session is no longer active")
				}
				return nil
			}
		}
	},
}

func readActivity(ctx context.Context, sessions *client.SessionManager) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		sessions.RecordActivity(client.ActivityKeyPress)
	}
}

func init() {
	watchCmd.Flags().DurationVar(&interval, "interval", client.DefaultHeartbeatInterval, "heartbeat interval")
	watchCmd.Flags().DurationVar(&idle, "idle", client.DefaultIdleCeiling, "idle ceiling before the session is destroyed")
	rootCmd.AddCommand(watchCmd)
}
