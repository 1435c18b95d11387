// Package main is the entry point for the taskify application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"taskify/internal/category"
	"taskify/internal/config"
	"taskify/internal/kv"
	"taskify/internal/notify"
	"taskify/internal/settings"
	"taskify/internal/task"
	"taskify/internal/ui"
	"taskify/internal/widget"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `taskify - A task manager for your terminal

USAGE:
    taskify [OPTIONS]
    taskify <command> [ARGS]

COMMANDS:
    backup           Create a snapshot of all data
    backup --list    List available snapshots
    backup --prune N Keep only the N most recent snapshots
    restore NAME     Restore from a specific snapshot
    restore --latest Restore from the most recent snapshot
    export           Export all data as a JSON bundle
    export -f csv    Export the task list as CSV
    import FILE      Import a previously exported JSON bundle

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    taskify is a keyboard-driven task manager with categories, priorities,
    due dates, reminders, and analytics.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        ?            Show help overlay
        q            Quit

    Tasks Pane:
        j/k, ↓/↑     Navigate
        a            Add task
        d/Space      Toggle done
        x            Delete task
        /            Search
        f            Cycle status filter
        s            Cycle sort mode
        J/K          Reorder (manual sort mode)
        y            Copy task title
        C            Clear completed tasks
        g/G          Go to top/bottom

    Categories Pane:
        a            Add category
        x            Delete category (fails while tasks use it)

DATA STORAGE:
    Data lives in ~/.taskify/ as JSON files, or in a SQLite database when
    storage: sqlite is configured.

CONFIGURATION:
    Optional config file: ~/.config/taskify/config.yaml

EXAMPLES:
    # Start the app
    taskify

    # Create a snapshot
    taskify backup

    # Restore the most recent snapshot
    taskify restore --latest

    # Export the task list as CSV
    taskify export -f csv -o tasks.csv
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("taskify version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/taskify/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	repos := newRepos(cfg, store)

	// Queue reminders for tasks that still have one in the future.
	if err := repos.Tasks.ScheduleReminders(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scheduling reminders failed: %v\n", err)
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	if err := ui.Run(repos, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// openStore selects the persistence backend from config.
func openStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return kv.NewSQLiteStore(cfg.GetDataDir())
	default:
		return kv.NewFileStore(cfg.GetDataDir())
	}
}

// newRepos wires the repositories with the scheduler and widget projection.
func newRepos(cfg *config.Config, store kv.Store) ui.Repos {
	categories := category.NewRepo(store)
	appSettings := settings.NewRepo(store)

	var scheduler task.Scheduler
	if cfg.Notifications.Enabled {
		if n := notify.New(); n.IsSupported() {
			s := notify.NewScheduler(n)
			s.SetSound(cfg.Notifications.Sound)
			scheduler = s
		}
	}

	widgetSync := widget.New(cfg.GetDataDir())

	tasks := task.NewRepo(store, categories, appSettings, scheduler, widgetSync)

	return ui.Repos{
		Tasks:      tasks,
		Categories: categories,
		Settings:   appSettings,
	}
}
