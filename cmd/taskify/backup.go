// Package main is the entry point for the taskify application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"taskify/internal/backup"
	"taskify/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `taskify backup - Create and manage snapshots

USAGE:
    taskify backup [OPTIONS]

OPTIONS:
    -l, --list     List available snapshots
    --prune N      Keep only the N most recent snapshots
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped snapshot of all data files (tasks, categories,
    settings). Snapshots are stored in the data directory under backups/
    and can be restored later. Snapshots cover the file backend; with
    sqlite storage, copy the database file instead.

EXAMPLES:
    # Create a new snapshot
    taskify backup

    # List all available snapshots
    taskify backup --list

    # Keep only the five most recent snapshots
    taskify backup --prune 5
`

// runBackup handles the "taskify backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available snapshots")
	fs.BoolVar(listFlag, "l", false, "list available snapshots (shorthand)")

	pruneFlag := fs.Int("prune", -1, "keep only the N most recent snapshots")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage == config.StorageSQLite {
		fmt.Fprintln(os.Stderr, "Warning: snapshots cover the file backend; sqlite data is not included.")
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listSnapshots(manager)
	case *pruneFlag >= 0:
		pruneSnapshots(manager, *pruneFlag)
	default:
		createSnapshot(manager)
	}
}

// createSnapshot creates a new snapshot and displays the result.
func createSnapshot(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating snapshot: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Snapshot created: %s\n", name)
	fmt.Printf("  Tasks: %d, Categories: %d\n", info.Stats["tasks"], info.Stats["categories"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listSnapshots lists all available snapshots.
func listSnapshots(manager *backup.Manager) {
	snapshots, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
		os.Exit(1)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots available.")
		fmt.Println("Run 'taskify backup' to create one.")
		return
	}

	fmt.Println("Available snapshots:")
	for _, s := range snapshots {
		age := formatAge(s.CreatedAt)
		fmt.Printf("  %s  (%s)   Tasks: %d, Categories: %d\n",
			s.Name, age, s.Stats["tasks"], s.Stats["categories"])
	}
}

// pruneSnapshots removes old snapshots, keeping the newest keepCount.
func pruneSnapshots(manager *backup.Manager, keepCount int) {
	deleted, err := manager.Prune(keepCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning snapshots: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Deleted %d snapshot(s), kept %d most recent\n", deleted, keepCount)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
