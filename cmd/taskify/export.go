// Package main is the entry point for the taskify application.
// This file contains the export subcommand handler.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"taskify/internal/backup"
	"taskify/internal/category"
	"taskify/internal/config"
	"taskify/internal/fsutil"
	"taskify/internal/kv"
	"taskify/internal/settings"
	"taskify/internal/task"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `taskify export - Export your data

USAGE:
    taskify export [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: json (default) or csv
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Exports your data. The JSON format is a complete bundle (tasks,
    categories, settings) that 'taskify import' can read back. The CSV
    format is a spreadsheet-friendly task list.

EXAMPLES:
    # Full JSON bundle to stdout
    taskify export

    # CSV task list
    taskify export --format csv

    # Save a bundle to a file
    taskify export --output backup.json
`

// cliRepos builds repositories without the scheduler or widget projection.
// Subcommands only read and write data; they never fire notifications.
func cliRepos(cfg *config.Config) (kv.Store, *task.Repo, *category.Repo, *settings.Repo, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	categories := category.NewRepo(store)
	appSettings := settings.NewRepo(store)
	tasks := task.NewRepo(store, categories, appSettings, nil, nil)
	return store, tasks, categories, appSettings, nil
}

// runExport handles the "taskify export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "json", "output format: json or csv")
	fs.StringVar(formatFlag, "f", "json", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format != "json" && format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'json' or 'csv'.\n", format)
		os.Exit(1)
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

	var output []byte
	if format == "csv" {
		allTasks, err := tasks.All()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
			os.Exit(1)
		}
		allCategories, err := categories.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading categories: %v\n", err)
			os.Exit(1)
		}
		var buf bytes.Buffer
		if err := backup.WriteCSV(&buf, allTasks, allCategories); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		output = buf.Bytes()
	} else {
		svc := backup.NewService(tasks, categories, appSettings)
		bundle, err := svc.Export()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting data: %v\n", err)
			os.Exit(1)
		}
		output, err = bundle.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding bundle: %v\n", err)
			os.Exit(1)
		}
	}

	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, output, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Export written to %s\n", *outputFlag)
	} else {
		os.Stdout.Write(output)
		if len(output) > 0 && output[len(output)-1] != '\n' {
			fmt.Println()
		}
	}
}
