package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inboxpilot/internal/cache"
	"inboxpilot/internal/config"
	"inboxpilot/internal/database"
	"inboxpilot/internal/emails"
	"inboxpilot/internal/models"
	"inboxpilot/internal/rules"
)

func main() {
	// Parse command line flags
	emlPath := flag.String("eml", "", "Path to EML file or directory containing EML files")
	userID := flag.String("user", "", "User whose rules to evaluate")
	flag.Parse()

	if *emlPath == "" || *userID == "" {
		fmt.Println("Usage:")
		fmt.Println("  Dry-run one email:  process-email -user <id> -eml /path/to/file.eml")
		fmt.Println("  Dry-run directory:  process-email -user <id> -eml /path/to/directory")
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	logger := cfg.SetupLogger()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRules, err := database.NewRuleStore(db).RulesForUser(ctx, *userID)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	fmt.Printf("Loaded %d rules for user %s\n", len(userRules), *userID)

	matcher := rules.NewMatcher(cache.New(time.Minute), cfg.MaxPatternLength, logger)

	paths, err := collectEMLFiles(*emlPath)
	if err != nil {
		log.Fatalf("Failed to access path: %v", err)
	}

	for _, path := range paths {
		message, err := emails.ParseFile(path)
		if err != nil {
			fmt.Printf("Warning: Failed to parse %s: %v\n", path, err)
			continue
		}

		email := emails.BuildContext(*message)
		rule := matcher.Match(userRules, email)
		if rule == nil {
			fmt.Printf("%s: no rule matched (from=%s subject=%q)\n", filepath.Base(path), email.From, email.Subject)
			continue
		}

		fmt.Printf("%s: matched rule %q (automate=%t)\n", filepath.Base(path), rule.Name, rule.Automate)
		for i, action := range rule.Actions {
			fmt.Printf("  action %d: %s%s\n", i+1, action.Type, describeAction(action))
		}
	}
}

// collectEMLFiles resolves a path to a list of .eml files
func collectEMLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(strings.ToLower(path), ".eml") {
			return nil, fmt.Errorf("expected .eml file or directory: %s", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".eml") {
			continue
		}
		paths = append(paths, filepath.Join(path, entry.Name()))
	}
	return paths, nil
}

func describeAction(action models.Action) string {
	var parts []string
	add := func(name string, value *string) {
		if value != nil && *value != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", name, *value))
		}
	}
	add("label", action.Label)
	add("subject", action.Subject)
	add("to", action.To)
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}
