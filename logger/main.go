// Log sink: receives records from the gateway over gRPC and forwards them to Parseable.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"sharkpay/pkg/dlog"
	"sharkpay/pkg/logsink"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/grpc"
)

type sinkConfig struct {
	Port     string `envconfig:"LOG_SINK_PORT" default:"11111"`
	URL      string `envconfig:"PARSEABLE_URL" required:"true"`
	Username string `envconfig:"PARSEABLE_USERNAME"`
	Password string `envconfig:"PARSEABLE_PASSWORD"`
}

type server struct {
	url    string
	basic  string
	client *http.Client
}

func newServer(cfg sinkConfig) *server {
	return &server{
		url:    strings.TrimRight(cfg.URL, "/"),
		basic:  base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password)),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendLog posts the payload to the logstream of the same name.
func (s *server) SendLog(ctx context.Context, logstream logsink.Logstream, payload string) error {
	return s.sendLog(ctx, s.url+"/api/v1/logstream/"+logstream.String(), []byte(payload))
}

func (s *server) sendLog(ctx context.Context, url string, log []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(log))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+s.basic)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("parseable %d: %s", resp.StatusCode, body)
	}
	// parseable answers an empty body on success
	if len(body) != 0 {
		return errors.New(string(body))
	}
	return nil
}

func Run(cfg sinkConfig, d dlog.Dlog) error {
	l, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	grpcServer := grpc.NewServer()
	logsink.RegisterServer(grpcServer, newServer(cfg))

	d.Info("log sink started", "port", cfg.Port, "parseable", cfg.URL)
	return grpcServer.Serve(l)
}

func main() {
	if envPath := os.Getenv("ENVPATH"); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			panic(err)
		}
	}

	var cfg sinkConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}

	d := dlog.Init(false)
	if err := Run(cfg, d); err != nil {
		d.Error("log sink stopped", "error", err.Error())
		os.Exit(1)
	}
}
