// Fakehealth is a stand-in for the health service, used to exercise the
// widget locally. It serves /health/health_check with configurable labels
// and can misbehave on demand.
//
// Usage:
//
//	go run ./scripts/fakehealth -port 8100 -processing DEGRADED -age 5m
//	go run ./scripts/fakehealth -mode garbage
//	go run ./scripts/fakehealth -mode hang
//
// Modes: ok (default), garbage (non-JSON body), hang (never responds),
// flap (alternates ok and garbage).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"
)

type healthResponse struct {
	ReceiverHealth   string `json:"receiver_health"`
	StorageHealth    string `json:"storage_health"`
	ProcessingHealth string `json:"processing_health"`
	AuditHealth      string `json:"audit_health"`
	LastUpdated      string `json:"last_updated"`
}

func main() {
	port := flag.Int("port", 8100, "port to listen on")
	receiver := flag.String("receiver", "Running", "receiver_health label")
	storage := flag.String("storage", "Running", "storage_health label")
	processing := flag.String("processing", "Running", "processing_health label")
	audit := flag.String("audit", "Running", "audit_health label")
	age := flag.Duration("age", 0, "how old last_updated should be")
	delay := flag.Duration("delay", 0, "delay before each response")
	mode := flag.String("mode", "ok", "ok, garbage, hang or flap")
	flag.Parse()

	var requests atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/health/health_check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		n := requests.Add(1)
		log.Printf("health_check #%d from %s mode=%s", n, r.RemoteAddr, *mode)

		if *delay > 0 {
			time.Sleep(*delay)
		}

		current := *mode
		if current == "flap" {
			current = "ok"
			if n%2 == 0 {
				current = "garbage"
			}
		}

		switch current {
		case "hang":
			<-r.Context().Done()
			return
		case "garbage":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
			return
		}

		resp := healthResponse{
			ReceiverHealth:   *receiver,
			StorageHealth:    *storage,
			ProcessingHealth: *processing,
			AuditHealth:      *audit,
			LastUpdated:      time.Now().Add(-*age).UTC().Format("2006-01-02T15:04:05Z"),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("encode response: %v", err)
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("fake health service listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
