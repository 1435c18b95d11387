// Package main is the entry point for the taskify application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"taskify/internal/backup"
	"taskify/internal/config"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `taskify restore - Restore data from a snapshot

USAGE:
    taskify restore [OPTIONS] [SNAPSHOT_NAME]

OPTIONS:
    --latest       Restore from the most recent snapshot
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    SNAPSHOT_NAME  Name of the snapshot to restore (e.g., 2025-12-15_143022_000)
                   Use 'taskify backup --list' to see available snapshots.

DESCRIPTION:
    Restores all data files (tasks, categories, settings) from a snapshot.
    A safety snapshot is automatically created before restoring.

EXAMPLES:
    # Restore from a specific snapshot
    taskify restore 2025-12-15_143022_000

    # Restore from the most recent snapshot
    taskify restore --latest

    # Restore without confirmation prompt
    taskify restore --force 2025-12-15_143022_000
`

// runRestore handles the "taskify restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent snapshot")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	// Determine which snapshot to restore
	var snapshotName string
	if *latestFlag {
		snapshots, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
			os.Exit(1)
		}
		if len(snapshots) == 0 {
			fmt.Fprintln(os.Stderr, "No snapshots available.")
			os.Exit(1)
		}
		snapshotName = snapshots[0].Name
	} else if fs.NArg() > 0 {
		snapshotName = fs.Arg(0)
	} else {
		fmt.Fprintln(os.Stderr, "Error: no snapshot specified")
		fmt.Fprintln(os.Stderr, "Use 'taskify restore SNAPSHOT_NAME' or 'taskify restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'taskify backup --list' to see available snapshots.")
		os.Exit(1)
	}

	info, err := manager.Get(snapshotName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from snapshot: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d, Categories: %d\n", info.Stats["tasks"], info.Stats["categories"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current data.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety snapshot first...")
	if err := manager.Restore(snapshotName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", snapshotName)
}
