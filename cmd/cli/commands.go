package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(metricsCmd)

	clockCmd.AddCommand(clockStartCmd)
	clockCmd.AddCommand(clockPauseCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Show the tracker snapshot: players, time, team lock, pending substitution",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [playerID]",
	Short: "Toggle a tracked player on or off the field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/toggle?id="+args[0], nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add [json]",
	Short: "Add a roster candidate to the tracker, e.g. '{\"id\":1,\"name\":\"A\",\"team_id\":\"home\",\"team_name\":\"Home\"}'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/add", []byte(args[0]))
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [json]",
	Short: "Complete the pending substitution with the given incoming player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/substitution/complete", []byte(args[0]))
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the pending substitution, reverting the triggering toggle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/substitution/cancel", nil)
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the pending substitution, leaving the field below capacity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/substitution/skip", nil)
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show the current role-policy alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/alerts")
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/score")
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the match event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/events")
	},
}

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clock")
	},
}

var clockStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/clock/start", nil)
	},
}

var clockPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/clock/pause", nil)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger an immediate snapshot sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sync", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
