package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"net"
	"os"
	"time"

	"bspview/internal/config"
	"bspview/internal/server"
	"bspview/internal/session"
	"bspview/internal/threading/monitoring"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	levels, err := session.LoadLevels(cfg)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	monitor := monitoring.NewPerformanceMonitor()
	go reportPerformance(monitor, cfg)

	sshServer := server.NewSSHServer(cfg, levels, monitor)
	_, port, err := net.SplitHostPort(cfg.Server.Address)
	if err != nil {
		log.Fatalf("Invalid server address %q: %v", cfg.Server.Address, err)
	}
	log.Printf("Starting BSP view - connect with: ssh -t -p %s localhost", port)
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// reportPerformance logs frame rate alerts while viewers are connected.
func reportPerformance(monitor *monitoring.PerformanceMonitor, cfg *config.Config) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if monitor.GetCurrentMetrics().ActiveSessions == 0 {
			continue
		}
		minFPS := float64(cfg.Server.TickRate) / 2
		for _, alert := range monitor.CheckPerformanceAlerts(minFPS, cfg.GetTickInterval()) {
			log.Printf("Performance %s: %s", alert.Type, alert.Message)
		}
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
