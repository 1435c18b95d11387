// Package main is the entry point for the taskify application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"taskify/internal/backup"
	"taskify/internal/config"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `taskify import - Import a previously exported bundle

USAGE:
    taskify import [OPTIONS] FILE

OPTIONS:
    --dry-run      Validate and show what would be imported, without writing
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    FILE           A JSON bundle created by 'taskify export'

DESCRIPTION:
    Replaces all tasks, categories, and settings with the contents of the
    bundle. Reminders for incomplete tasks with a future reminder time are
    rescheduled after the import.

EXAMPLES:
    # Check what a bundle contains
    taskify import --dry-run backup.json

    # Import it
    taskify import backup.json
`

// runImport handles the "taskify import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "validate without writing")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no file specified")
		fmt.Fprintln(os.Stderr, "Use 'taskify import FILE'")
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	bundle, err := backup.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid bundle: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bundle version %s, exported %s\n", bundle.Version, bundle.ExportedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d, Categories: %d\n", len(bundle.Tasks), len(bundle.Categories))

	if *dryRunFlag {
		fmt.Println("Dry run: nothing written.")
		return
	}

	if !*forceFlag {
		fmt.Println("⚠ This will replace your current data.")
		fmt.Print("Continue? [y/N] ")

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			response = ""
		}
		if response != "y" && response != "Y" && response != "yes" {
			fmt.Println("Import cancelled.")
			os.Exit(0)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, tasks, categories, appSettings, err := cliRepos(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := backup.NewService(tasks, categories, appSettings)
	if err := svc.Import(bundle); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing bundle: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Imported %d task(s) and %d categor%s\n",
		len(bundle.Tasks), len(bundle.Categories), plural(len(bundle.Categories), "y", "ies"))
}

// plural picks the singular or plural suffix for a count.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
