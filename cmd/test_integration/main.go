package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

type decision struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

func main() {
	if v := os.Getenv("FAQDESK_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Health...")
	if _, ok := sendRequest("GET", "/healthz", nil); !ok {
		fmt.Println("FAILED: Health")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health")

	checks := []struct {
		name   string
		query  string
		kind   string
		source string
	}{
		{"FAQ answer", "What are your office hours?", "FAQ_ANSWER", "faq"},
		{"Escalation", "I think this charge is fraud and I want a refund", "ESCALATE", "escalation"},
	}

	for i, c := range checks {
		fmt.Printf("%d. %s...\n", i+2, c.name)
		body, ok := sendRequest("POST", "/resolve", map[string]string{"query": c.query})
		if !ok {
			fmt.Printf("FAILED: %s\n", c.name)
			os.Exit(1)
		}
		var d decision
		if err := json.Unmarshal(body, &d); err != nil {
			fmt.Printf("FAILED: %s: %v\n", c.name, err)
			os.Exit(1)
		}
		if d.Kind != c.kind || d.Source != c.source {
			fmt.Printf("FAILED: %s: got %s/%s, want %s/%s\n", c.name, d.Kind, d.Source, c.kind, c.source)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", c.name)
	}
}

func sendRequest(method, endpoint string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	return respBody, true
}
