/*
Package api
File: handlers.go
Description:
    Contains the HTTP handlers for the REST API.
    These handlers expose research progress, the wormhole network and the
    hero's state, and accept the few player commands the server supports
    (selling research, steering the hero's ship).

    Key Responsibilities:
    - Input Validation (Is the JSON valid? Is the method allowed?)
    - State Modification (Selling points, setting velocity)
    - Thread Safety (Using the engine's DataLock so reads never see a half-run tick)
*/

package api

import (
	"encoding/json"
	"net/http"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/everforgeworks/galaxies-warp/internal/research"
	"github.com/everforgeworks/galaxies-warp/internal/sim"
	"github.com/everforgeworks/galaxies-warp/internal/wormhole"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Request DTOs (Data Transfer Objects)

type SellRequest struct {
	Points float64 `json:"points"`
}

type VelocityRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Response DTOs

type SellResponse struct {
	Sold     float64 `json:"sold"`
	Credited float64 `json:"credited"`
	Points   float64 `json:"points"`
	Credits  float64 `json:"credits"`
}

type HeroResponse struct {
	Hero game.Hero `json:"hero"`
	Ship game.Ship `json:"ship"`
}

type WormholeView struct {
	ID        int       `json:"id"`
	Position  game.Vec2 `json:"position"`
	PartnerID int       `json:"partner_id"`
	Enabled   bool      `json:"enabled"`
}

type WormholesResponse struct {
	Generated   bool                       `json:"generated"`
	Texture     string                     `json:"texture"`
	Warning     bool                       `json:"warning"`
	Wormholes   []WormholeView             `json:"wormholes"`
	Distortions []wormhole.DistortionState `json:"distortions"`
}

// Server holds the simulation components the handlers read and mutate.
type Server struct {
	engine    *sim.Engine
	ledger    *research.Ledger
	network   *wormhole.Network
	warner    *wormhole.Warner
	abilities []game.AbilityConfig
	hub       *Hub
	sellLimit *rate.Limiter
	log       *logrus.Entry
}

// ServerOption customises a Server.
type ServerOption func(*Server)

// WithHub pushes sell confirmations to connected clients.
func WithHub(h *Hub) ServerOption {
	return func(s *Server) { s.hub = h }
}

// WithSellLimiter throttles POST /api/research/sell.
func WithSellLimiter(l *rate.Limiter) ServerOption {
	return func(s *Server) { s.sellLimit = l }
}

// WithAbilities sets the ability values served by GET /api/abilities.
func WithAbilities(a []game.AbilityConfig) ServerOption {
	return func(s *Server) { s.abilities = a }
}

func NewServer(engine *sim.Engine, ledger *research.Ledger, network *wormhole.Network, warner *wormhole.Warner, opts ...ServerOption) *Server {
	s := &Server{
		engine:  engine,
		ledger:  ledger,
		network: network,
		warner:  warner,
		log:     logrus.WithField("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers every REST endpoint on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	// Information Endpoints
	mux.HandleFunc("/api/research", s.HandleGetResearch)
	mux.HandleFunc("/api/wormholes", s.HandleGetWormholes)
	mux.HandleFunc("/api/hero", s.HandleGetHero)
	mux.HandleFunc("/api/abilities", s.HandleGetAbilities)

	// Action Endpoints
	mux.HandleFunc("/api/research/sell", s.HandleSellResearch)
	mux.HandleFunc("/api/hero/velocity", s.HandleSetVelocity)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// HandleGetResearch returns the research session, unsold points and every discovered action.
func (s *Server) HandleGetResearch(w http.ResponseWriter, r *http.Request) {
	s.engine.DataLock.RLock()
	defer s.engine.DataLock.RUnlock()

	writeJSON(w, s.ledger.Report())
}

// HandleGetWormholes returns the generated network and the distortions currently live.
func (s *Server) HandleGetWormholes(w http.ResponseWriter, r *http.Request) {
	s.engine.DataLock.RLock()
	defer s.engine.DataLock.RUnlock()

	resp := WormholesResponse{
		Generated:   s.network.Generated(),
		Texture:     s.network.Config().Texture,
		Wormholes:   []WormholeView{},
		Distortions: []wormhole.DistortionState{},
	}
	if s.warner != nil {
		resp.Warning = s.warner.Warning()
	}
	for _, wh := range s.network.Wormholes() {
		view := WormholeView{ID: wh.ID, Position: wh.Position, PartnerID: -1, Enabled: wh.Enabled()}
		if p := wh.ConnectedWormhole(); p != nil {
			view.PartnerID = p.ID
		}
		resp.Wormholes = append(resp.Wormholes, view)
	}
	for _, d := range s.network.ActiveDistortions() {
		resp.Distortions = append(resp.Distortions, d.Snapshot())
	}
	writeJSON(w, resp)
}

// HandleGetHero returns the hero's wallet, inventory and ship.
func (s *Server) HandleGetHero(w http.ResponseWriter, r *http.Request) {
	s.engine.DataLock.RLock()
	defer s.engine.DataLock.RUnlock()

	world := s.engine.World
	ship := world.HeroShip()
	if ship == nil {
		http.Error(w, "Hero has no ship", http.StatusNotFound)
		return
	}

	hero := world.Hero
	hero.Items = make(map[string]int, len(world.Hero.Items))
	for k, v := range world.Hero.Items {
		hero.Items[k] = v
	}
	writeJSON(w, HeroResponse{Hero: hero, Ship: *ship})
}

// HandleGetAbilities returns the configured ability values.
func (s *Server) HandleGetAbilities(w http.ResponseWriter, r *http.Request) {
	abilities := s.abilities
	if abilities == nil {
		abilities = []game.AbilityConfig{}
	}
	writeJSON(w, abilities)
}

// HandleSellResearch exchanges research points for credits.
// Requests for more than the hero holds, or for negative amounts, are clamped.
func (s *Server) HandleSellResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.sellLimit != nil && !s.sellLimit.Allow() {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.engine.DataLock.Lock()
	hero := &s.engine.World.Hero
	sold, credited := s.ledger.Sell(hero, req.Points)
	resp := SellResponse{
		Sold:     sold,
		Credited: credited,
		Points:   s.ledger.Points(),
		Credits:  hero.Credits,
	}
	s.engine.DataLock.Unlock()

	if s.hub != nil && sold > 0 {
		if err := s.hub.BroadcastMessage(TypeResearchSold, resp); err != nil {
			s.log.WithError(err).Warn("Broadcast failed")
		}
	}
	writeJSON(w, resp)
}

// HandleSetVelocity sets the hero ship's velocity. The next tick integrates it.
func (s *Server) HandleSetVelocity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VelocityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request", http.StatusBadRequest)
		return
	}

	s.engine.DataLock.Lock()
	defer s.engine.DataLock.Unlock()

	ship := s.engine.World.HeroShip()
	if ship == nil {
		http.Error(w, "Hero has no ship", http.StatusNotFound)
		return
	}
	ship.Velocity = game.Vec2{X: req.X, Y: req.Y}
	writeJSON(w, ship)
}
