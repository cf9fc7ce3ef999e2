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

const apiBase = "http://localhost:8080/api/v1"

type comparisonJob struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Error string `json:"error"`
	Result *struct {
		Games []struct {
			AppID uint32 `json:"appId"`
			Name  string `json:"name"`
		} `json:"games"`
	} `json:"result"`
}

// Dev smoke check: start a comparison against a locally running server
// and poll it to completion.
//
//	go run scripts/smoke-comparison.go alice bob [filter ...]
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: smoke-comparison <account> <account> [filter ...]")
		os.Exit(1)
	}
	accounts := os.Args[1:3]
	filters := os.Args[3:]

	body, _ := json.Marshal(map[string]any{
		"accounts": accounts,
		"filters":  filters,
	})

	resp, err := http.Post(apiBase+"/comparisons", "application/json", bytes.NewReader(body))
	if err != nil {
		fatalf("create comparison: %v", err)
	}
	job := decodeJob(resp)
	fmt.Printf("started comparison %s\n", job.ID)

	for job.State == "pending" || job.State == "running" {
		time.Sleep(2 * time.Second)
		resp, err := http.Get(apiBase + "/comparisons/" + job.ID)
		if err != nil {
			fatalf("poll comparison: %v", err)
		}
		job = decodeJob(resp)
		fmt.Printf("state: %s\n", job.State)
	}

	if job.State != "done" {
		fatalf("comparison settled as %s: %s", job.State, job.Error)
	}
	for _, g := range job.Result.Games {
		fmt.Printf("%d\t%s\n", g.AppID, g.Name)
	}
	fmt.Printf("total games in common: %d\n", len(job.Result.Games))
}

func decodeJob(resp *http.Response) comparisonJob {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		fatalf("request failed: %d: %s", resp.StatusCode, msg)
	}
	var job comparisonJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		fatalf("decode response: %v", err)
	}
	return job
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
