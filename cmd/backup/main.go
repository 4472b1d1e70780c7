package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"speechcoach/internal/config"
	"speechcoach/internal/database"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	backupService := service.NewBackupService(db, logger)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, logger, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, db, logger, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, logger *zap.Logger, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create output directory", zap.Error(err))
		}
	}

	if err := backupService.Export(outputPath); err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}

	if fileInfo, err := os.Stat(outputPath); err == nil {
		logger.Info("export complete",
			zap.String("path", outputPath),
			zap.Int64("bytes", fileInfo.Size()))
	}
}

func handleImport(backupService *service.BackupService, db *database.DB, logger *zap.Logger, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		logger.Fatal("input file does not exist", zap.String("path", inputPath))
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(confirmation) != "yes" {
			logger.Info("import cancelled")
			return
		}

		if err := clearDatabase(db); err != nil {
			logger.Fatal("failed to clear database", zap.Error(err))
		}
		logger.Info("existing data cleared")
	}

	if err := backupService.Import(inputPath); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("import complete", zap.String("path", inputPath))
}

func clearDatabase(db *database.DB) error {
	// Delete in reverse order of foreign key dependencies
	tables := []string{
		"redeem_codes",
		"completed_exercises",
		"fluency_scores",
		"ai_exercises",
		"game_scores",
		"weekly_plans",
		"user_progress",
		"exercises",
		"users",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func printUsage() {
	fmt.Println("SpeechCoach Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON file")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -output mybackup.json")
	fmt.Println("  backup import -input backup.json")
	fmt.Println("  backup import -input backup.json -clear")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH    SQLite database path (default: ./speechcoach.db)")
	fmt.Println("  DB_URL     PostgreSQL or MySQL connection URL")
}
