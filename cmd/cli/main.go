package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/payrails/internal/infrastructure/config"
	"github.com/iho/payrails/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payrails-cli",
		Short: "Payrails CLI tool",
		Long:  `A command line interface for interacting with the Payrails API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Payrails API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Transfer commands
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer operations",
	}

	var submitFile string
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a transfer from a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			submitTransfer(submitFile)
		},
	}
	submitCmd.Flags().StringVar(&submitFile, "file", "", "Path to the transfer request JSON")
	submitCmd.MarkFlagRequired("file")

	statusCmd := &cobra.Command{
		Use:   "status [reference]",
		Short: "Look up a transfer by reference",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transfers/" + args[0])
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel [reference]",
		Short: "Cancel a transfer that has not been debited yet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers/"+args[0]+"/cancel", nil)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history [account-id]",
		Short: "List an account's transfer history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/transfers")
		},
	}

	transferCmd.AddCommand(submitCmd, statusCmd, cancelCmd, historyCmd)
	rootCmd.AddCommand(transferCmd)

	// Schedule commands
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Standing instruction operations",
	}

	var scheduleFile string
	scheduleCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a schedule from a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			submitSchedule(scheduleFile)
		},
	}
	scheduleCreateCmd.Flags().StringVar(&scheduleFile, "file", "", "Path to the schedule request JSON")
	scheduleCreateCmd.MarkFlagRequired("file")

	scheduleGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Look up a schedule by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/schedules/" + args[0])
		},
	}

	scheduleCancelCmd := &cobra.Command{
		Use:   "cancel [id]",
		Short: "Deactivate a schedule",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteJSON("/api/v1/schedules/" + args[0])
		},
	}

	scheduleCmd.AddCommand(scheduleCreateCmd, scheduleGetCmd, scheduleCancelCmd)
	rootCmd.AddCommand(scheduleCmd)

	// Migration commands (operate on the database directly, not the API)
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema operations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(postgres.RunMigrations)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(postgres.RunMigrationsDown)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runMigrations(run func(databaseURL, migrationsPath string) error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("OK")
}

func submitTransfer(path string) {
	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading request file: %v\n", err)
		os.Exit(1)
	}

	postJSON("/api/v1/transfers", body)
}

func submitSchedule(path string) {
	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading request file: %v\n", err)
		os.Exit(1)
	}

	postJSON("/api/v1/schedules", body)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func deleteJSON(path string) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
