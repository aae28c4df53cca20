/*
Package main
File: main.go
Description: Server entry point. Loads the universe, builds the research and wormhole
systems, runs the simulation heartbeat and serves the REST API, the real-time
WebSocket hub and Prometheus metrics.
*/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/everforgeworks/galaxies-warp/internal/api"
	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/everforgeworks/galaxies-warp/internal/research"
	"github.com/everforgeworks/galaxies-warp/internal/sim"
	"github.com/everforgeworks/galaxies-warp/internal/wormhole"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	setupLogging()

	configPath := getEnvOrDefault("WARP_CONFIG", "universe.yaml")
	port := getEnvOrDefault("PORT", "8081")
	tickRate := getEnvInt("TICK_RATE", 60)
	pulseInterval := getDurationOrDefault("PULSE_INTERVAL", 250*time.Millisecond)

	// 1. Load the static universe configuration from YAML
	universe, err := game.LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Config Fail: %v", err)
	}
	world, err := game.NewWorld(universe)
	if err != nil {
		logrus.Fatalf("World Fail: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"systems": len(world.Systems),
		"planets": len(world.Planets),
		"ships":   len(world.Ships),
		"seed":    universe.Seed,
	}).Info("Universe loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize and start the Real-Time WebSocket Hub
	hub := api.NewHub()
	go hub.Run(ctx)

	broadcast := func(msgType string, payload interface{}) {
		if err := hub.BroadcastMessage(msgType, payload); err != nil {
			logrus.WithError(err).Warn("Broadcast failed")
		}
	}

	// 3. Build the simulation systems
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	network := wormhole.NewNetwork(universe.Wormholes,
		wormhole.WithMetrics(wormhole.NewMetrics(reg)),
		wormhole.WithTeleportHandler(func(ev wormhole.TeleportEvent) {
			broadcast(api.TypeWormholeTeleport, ev)
		}),
	)
	warner := wormhole.NewWarner(network, func(near bool) {
		broadcast(api.TypeDistortionNear, map[string]bool{"near": near})
	})

	// Research pulses arrive every tick; only the latest per kind is pushed, at most once per interval.
	pending := make(map[string]research.Pulse)
	pulseLimit := rate.NewLimiter(rate.Every(pulseInterval), 1)
	ledger := research.NewLedger(universe.Research,
		research.WithLedgerMetrics(research.NewMetrics(reg)),
		research.WithPulseHandler(func(p research.Pulse) {
			pending[p.Kind] = p
		}),
	)
	for _, p := range research.DefaultProviders(world.Balance, network) {
		ledger.AddResearchProvider(p)
	}

	engine := sim.NewEngine(world, sim.WithMetrics(sim.NewMetrics(reg)))
	for _, s := range []sim.System{network, ledger, warner} {
		if err := engine.Register(s); err != nil {
			logrus.Fatalf("Register Fail: %v", err)
		}
	}

	// 4. THE SIMULATION HEARTBEAT
	interval := time.Second / time.Duration(tickRate)
	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		engine.Run(ctx, interval, func() {
			if len(pending) == 0 || !pulseLimit.Allow() {
				return
			}
			pulses := make([]research.Pulse, 0, len(pending))
			for kind, p := range pending {
				pulses = append(pulses, p)
				delete(pending, kind)
			}
			broadcast(api.TypeResearchPulse, pulses)
		})
	}()

	// 5. Hot-reload logic: SIGHUP re-reads the research ship list without a restart
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigChan:
				logrus.Info("SIGNAL: Reloading research ships...")
				u, err := game.LoadConfig(configPath)
				if err != nil {
					logrus.WithError(err).Error("Reload failed, keeping current configuration")
					continue
				}
				engine.DataLock.Lock()
				ledger.SetResearchShips(u.Research.Ships)
				engine.DataLock.Unlock()
				logrus.WithField("ships", u.Research.Ships).Info("Research ships reloaded")
			}
		}
	}()

	// 6. Setup Router and Handlers
	mux := http.NewServeMux()
	api.NewServer(engine, ledger, network, warner,
		api.WithHub(hub),
		api.WithAbilities(universe.Abilities),
		api.WithSellLimiter(rate.NewLimiter(rate.Limit(5), 10)),
	).Routes(mux)

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		api.ServeWs(hub, w, r)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// 7. Start the Server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logrus.Infof("GALAXIES: WARP Server live on :%s (tick %s)", port, interval)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server Fail: %v", err)
		}
	}()

	// 8. Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP shutdown failed")
	}
	cancel()
	<-simDone
	logrus.Info("Server stopped")
}

// corsMiddleware lets browser clients on other origins talk to the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
