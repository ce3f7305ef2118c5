package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/codeclash-games/codeclash/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Url string `envconfig:"CLASH_HP_URL" default:"http://localhost:8080/healthz"`
}

func main() {
	flag.Parse()
	ctx, cancel := shutdown.New()
	logger := logging.FromContext(ctx)
	defer cancel()
	config := Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			DisableCompression:    true,
			IdleConnTimeout:       5 * time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.Url, nil)
	if err != nil {
		logger.Fatalf("build request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Fatalf("client get: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Fatalf("read all body bytes: %v", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%d %s\n", resp.StatusCode, string(body))
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
