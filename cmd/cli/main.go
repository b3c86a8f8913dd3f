package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type report struct {
	Results []struct {
		Channel  string        `json:"channel"`
		Error    string        `json:"error"`
		Duration time.Duration `json:"duration_ns"`
	} `json:"results"`
}

func main() {
	api := flag.String("api", envOr("API_BASE", "http://localhost:8080"), "operator API base URL")
	key := flag.String("key", firstKey(os.Getenv("ADMIN_API_KEYS")), "admin API key")
	flag.Parse()

	if *key == "" {
		fmt.Println("No admin key; set ADMIN_API_KEYS or pass -key.")
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(*api, "/")+"/api/notify/test", nil)
	if err != nil {
		fmt.Println("Invalid API base:", err)
		os.Exit(1)
	}
	req.Header.Set("X-API-Key", *key)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadGateway {
		fmt.Println("API returned status:", resp.Status)
		os.Exit(1)
	}

	var rep report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		fmt.Println("Bad response:", err)
		os.Exit(1)
	}
	if len(rep.Results) == 0 {
		fmt.Println("No channels enabled.")
		return
	}
	failed := 0
	for _, r := range rep.Results {
		if r.Error != "" {
			failed++
			fmt.Printf("✖ %-12s %s\n", r.Channel, r.Error)
			continue
		}
		fmt.Printf("✔ %-12s %s\n", r.Channel, r.Duration.Round(time.Millisecond))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func firstKey(list string) string {
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}
