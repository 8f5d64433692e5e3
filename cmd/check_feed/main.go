package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/services"
)

func main() {
	gatewayURL := flag.String("gateway", "http://localhost:8081", "base URL of the watch gateway")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(*gatewayURL + "/api/dashboard")
	if err != nil {
		log.Fatalf("Failed to reach gateway: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Gateway returned status %d", resp.StatusCode)
	}

	var dash models.DashboardSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&dash); err != nil {
		log.Fatalf("Failed to decode dashboard: %v", err)
	}

	fmt.Printf("Watch gateway at %s\n\n", *gatewayURL)

	if dash.Status == nil {
		fmt.Println("System status: not fetched yet")
	} else {
		fmt.Printf("System status (fetched %s):\n", humanize.Time(dash.StatusFetchedAt))
		if dash.Status.LiveTrackingActive {
			fmt.Println("  Live tracking: active")
		} else {
			fmt.Println("  Live tracking: inactive")
		}
		fmt.Printf("  Frames captured: %s\n", dash.FramesDisplay)
		fmt.Printf("  Last analysis: %s\n", dash.LastAnalysisAgo)
	}
	fmt.Println()

	switch {
	case dash.ActiveAnomaly == nil:
		fmt.Println("Active anomaly: not fetched yet")
	case !dash.ActiveAnomaly.HasAnomaly:
		fmt.Println("Active anomaly: none")
	case dash.ActiveAnomaly.Timestamp != nil:
		fmt.Printf("Active anomaly (%s):\n  %s\n",
			humanize.Time(*dash.ActiveAnomaly.Timestamp), dash.ActiveAnomaly.Report)
	default:
		fmt.Printf("Active anomaly:\n  %s\n", dash.ActiveAnomaly.Report)
	}
	fmt.Println()

	if len(dash.Notifications) == 0 {
		fmt.Println("No notifications retained")
		return
	}

	fmt.Printf("Notifications (%d of %d slots, most recent first):\n",
		len(dash.Notifications), services.MaxNotifications)
	for _, n := range dash.Notifications {
		fmt.Printf("  [%s] %-7s %s\n", n.DisplayTime, n.Kind, n.Message)
	}
	if !dash.FeedFetchedAt.IsZero() {
		fmt.Printf("\nFeed last refreshed %s\n", humanize.Time(dash.FeedFetchedAt))
	}
}
