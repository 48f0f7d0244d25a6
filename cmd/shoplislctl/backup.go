package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dukerupert/shoplisl/internal/backup"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload an encrypted database snapshot to S3-compatible storage",
	Long: `Snapshot the database, encrypt it with SHOPLISL_BACKUP_PASSPHRASE and
upload it to SHOPLISL_S3_BUCKET under the tenant id.

Examples:
  shoplislctl backup              # Upload a new snapshot
  shoplislctl backup --keep 14    # Upload, then keep only the newest 14
  shoplislctl backup --list       # List stored snapshots`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <key>",
	Short: "Replace the database with a stored snapshot",
	Long: `Download, decrypt and verify a snapshot, then replace the database file
with it. Stop the server first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd, restoreCmd)
	backupCmd.Flags().Bool("list", false, "list snapshots instead of uploading")
	backupCmd.Flags().Int("keep", 0, "after uploading, delete all but the newest N snapshots (0 keeps all)")
}

func backupManager() (*backup.Manager, error) {
	return backup.NewManager(backup.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Prefix:    cfg.Tenant,
	}, logger)
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	m, err := backupManager()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		objects, err := m.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tBYTES\tMODIFIED")
		for _, o := range objects {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Key, o.Size, o.LastModified.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	}

	if cfg.BackupPassphrase == "" {
		return errors.New("SHOPLISL_BACKUP_PASSPHRASE is not set")
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	obj, err := m.Backup(ctx, db, cfg.BackupPassphrase)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "uploaded %s (%d bytes)\n", obj.Key, obj.Size)

	if keep, _ := cmd.Flags().GetInt("keep"); keep > 0 {
		removed, err := m.Prune(ctx, keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d old snapshots\n", removed)
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	if cfg.BackupPassphrase == "" {
		return errors.New("SHOPLISL_BACKUP_PASSPHRASE is not set")
	}
	m, err := backupManager()
	if err != nil {
		return err
	}
	if err := m.Restore(commandContext(cmd), args[0], cfg.BackupPassphrase, cfg.DBPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "restored %s into %s\n", args[0], cfg.DBPath)
	return nil
}
