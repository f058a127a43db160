package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/neekrasov/gate/internal/application"
	"github.com/neekrasov/gate/internal/config"
	"github.com/neekrasov/gate/internal/console"
	"github.com/neekrasov/gate/pkg/logger"
	"github.com/neekrasov/gate/pkg/sync"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gate",
		Short:        "Run commands behind a FIFO concurrency gate",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gate version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	runCmd := &cobra.Command{
		Use:   "run <tasks-file>",
		Short: "Run the tasks from a file with bounded concurrency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			capacity, _ := cmd.Flags().GetInt("capacity")
			return runTasks(configPath, args[0], capacity)
		},
	}
	runCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	runCmd.Flags().IntP("capacity", "n", 0, "Override gate capacity from config")
	rootCmd.AddCommand(runCmd)

	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Drive an in-process gate interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, _ := cmd.Flags().GetInt("capacity")
			level, _ := cmd.Flags().GetString("log-level")
			return startConsole(capacity, level)
		},
	}
	consoleCmd.Flags().IntP("capacity", "n", 2, "Number of permits")
	consoleCmd.Flags().String("log-level", "warn", "Log level for gate events")
	rootCmd.AddCommand(consoleCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show runs recorded in the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("output")
			return showHistory(configPath, verbose)
		},
	}
	historyCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	historyCmd.Flags().BoolP("output", "o", false, "Print captured task output")
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTasks(cfgPath, tasksPath string, capacity int) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	if capacity != 0 {
		cfg.Gate = &config.GateConfig{Capacity: capacity}
	}

	tasks, err := config.GetTasks(tasksPath)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	results, err := application.New(&cfg).Run(ctx, tasks)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, len(results))
	}

	return nil
}

func startConsole(capacity int, level string) error {
	if err := logger.InitLogger(level, ""); err != nil {
		return err
	}

	sem, err := sync.NewSemaphore(capacity)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("gate(%d)> ", capacity),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline failed: %w", err)
	}
	defer rl.Close()

	return console.New(sem, rl).Run(rl)
}

func showHistory(cfgPath string, withOutput bool) error {
	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	entries, err := application.New(&cfg).History()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tSTARTED\tDURATION\tEXIT\tERROR")
	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			entry.ID, entry.Task, entry.StartedAt.Format("2006-01-02 15:04:05"),
			entry.Duration(), entry.ExitCode, entry.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if withOutput {
		for _, entry := range entries {
			fmt.Printf("\n== %d %s ==\n%s", entry.ID, entry.Task, entry.Output)
		}
	}

	return nil
}
