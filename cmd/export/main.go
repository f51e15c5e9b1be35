package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/taskreg/api/internal/service"
	"github.com/taskreg/api/internal/store"
)

// export is a one-shot tool: load the registry from the data directory,
// write a CSV task report, and optionally take a backup of the data files.
func main() {
	dataDir := flag.String("data", "data", "Data file directory")
	outPath := flag.String("out", "", "Output CSV path (default: <export-dir>/tasks-<date>.csv)")
	exportDir := flag.String("export-dir", "exports", "Directory for generated reports")
	backupDir := flag.String("backup", "", "Also copy data files into this directory")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	st := store.NewFileStore(*dataDir)
	ctx := context.Background()
	if err := st.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		os.Exit(1)
	}

	registry := service.NewRegistry(st)
	if err := registry.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		os.Exit(1)
	}

	path := *outPath
	if path == "" {
		if err := os.MkdirAll(*exportDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating export directory: %v\n", err)
			os.Exit(1)
		}
		name := fmt.Sprintf("tasks-%s.csv", time.Now().Format("2006-01-02"))
		path = filepath.Join(*exportDir, name)
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	if err := registry.ExportTasksCSV(f); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output file: %v\n", err)
		os.Exit(1)
	}

	if *backupDir != "" {
		if err := st.Backup(*backupDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error taking backup: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Backup:   %s\n", *backupDir)
	}

	counts := registry.Counts()
	fmt.Println("Task Report Generated")
	fmt.Println("=====================")
	fmt.Printf("Tasks:    %d\n", counts["tasks"])
	fmt.Printf("Teams:    %d\n", counts["teams"])
	fmt.Printf("Users:    %d\n", counts["users"])
	fmt.Printf("Tags:     %d\n", counts["tags"])
	fmt.Printf("Output:   %s\n", path)
}
