package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/.trial/runs.db"); got != filepath.Join(home, ".trial", "runs.db") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("./runs.db"); got != "./runs.db" {
		t.Errorf("expandHome changed a relative path: %q", got)
	}
}

func TestLoadConfigDifficulty(t *testing.T) {
	defer func() { flagDifficulty, flagConfig = "", "" }()

	flagDifficulty = "hard"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Progression.StartLevel != 4 {
		t.Errorf("hard StartLevel = %d, expected 4", cfg.Progression.StartLevel)
	}

	flagDifficulty = "legendary"
	if _, err := loadConfig(); err == nil {
		t.Error("unknown difficulty accepted")
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	defer func() { flagLogLevel = "info" }()

	flagLogLevel = "loud"
	if _, _, err := newLogger(false); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	defer func() { flagLogFile, flagLogLevel = "", "info" }()

	flagLogLevel = "debug"
	flagLogFile = filepath.Join(t.TempDir(), "logs", "trial.log")
	logger, closer, err := newLogger(true)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("run saved", "score", 42)
	closer.Close()

	data, err := os.ReadFile(flagLogFile)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
