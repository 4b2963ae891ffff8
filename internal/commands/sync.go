package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/remote"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push or pull a snapshot of all notes to a remote",
	Long: `Copy every task and learning entry to a remote snapshot endpoint and back.
The endpoint is sync.url in the config; 'stickies sync serve' runs one.`,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local notes as the remote snapshot",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		client, err := newSyncClient(a)
		if err != nil {
			return err
		}

		tasks, learning, err := a.store.ExportAll(ctx)
		if err != nil {
			return err
		}
		snap := remote.NewSnapshot(tasks, learning, time.Now())

		if err := client.Push(ctx, snap); err != nil {
			return err
		}
		fmt.Printf("⬆️  Pushed %d task(s) and %d learning entr(ies) as snapshot %s\n", len(tasks), len(learning), snap.ID)
		return nil
	}),
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the remote snapshot",
	Long:  "Download the remote snapshot and show what it holds. With --apply, local notes are replaced by it.",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		client, err := newSyncClient(a)
		if err != nil {
			return err
		}

		snap, err := client.Pull(ctx)
		if errors.Is(err, remote.ErrNoSnapshot) {
			fmt.Println("The remote has no snapshot yet. Use 'stickies sync push' first.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("⬇️  Snapshot %s from %s: %d task(s), %d learning entr(ies)\n",
			snap.ID, snap.ExportedAt.Local().Format("2006-01-02 15:04:05"), len(snap.Tasks), len(snap.Learning))

		apply, _ := cmd.Flags().GetBool("apply")
		if !apply {
			fmt.Println("Run with --apply to replace local notes with it.")
			return nil
		}

		if err := a.store.ReplaceAll(ctx, snap.Tasks, snap.Learning); err != nil {
			return err
		}
		fmt.Println("✅ Local notes replaced")
		return nil
	}),
}

var syncServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a snapshot endpoint other machines can push to",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = a.cfg.Sync.Listen
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := remote.NewServer(a.cfg.Sync.APIKey, a.log.Named("sync"))
		fmt.Printf("🔄 Serving snapshots on %s/snapshot (ctrl+c to stop)\n", addr)
		return srv.Run(ctx, addr)
	}),
}

func newSyncClient(a *app) (*remote.Client, error) {
	client, err := remote.NewClient(a.cfg.Sync.URL, a.cfg.Sync.APIKey,
		remote.WithClientLogger(a.log.Named("sync")))
	if errors.Is(err, remote.ErrNoRemote) {
		return nil, fmt.Errorf("%w: set sync.url in the config or STICKIES_SYNC_URL", err)
	}
	return client, err
}

func init() {
	syncPullCmd.Flags().Bool("apply", false, "Replace local notes with the snapshot")
	syncServeCmd.Flags().String("listen", "", "Listen address (default sync.listen)")

	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncServeCmd)
}
