package api

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rileyhilliard/nerdminer/internal/render"
	"github.com/rileyhilliard/nerdminer/internal/supervisor"
)

// StatusResponse is the JSON body of GET /api/status and of every
// websocket push.
type StatusResponse struct {
	Running        bool       `json:"running"`
	TotalHashes    uint64     `json:"total_hashes"`
	CurrentRate    float64    `json:"current_rate"`
	AcceptedShares uint64     `json:"accepted_shares"`
	Uptime         string     `json:"uptime"`
	RateHistory    []float64  `json:"rate_history"`
	ScreenOn       bool       `json:"screen_on"`
	TemperatureC   int        `json:"temperature_c"`
	BTCPriceUSD    float64    `json:"btc_price_usd"`
	BlockHeight    uint64     `json:"block_height"`
	Difficulty     string     `json:"difficulty"`
	NetworkHash    string     `json:"network_hashrate"`
	LastFetchedAt  *time.Time `json:"last_fetched_at"`
}

// NewStatusResponse converts a supervisor status.
func NewStatusResponse(st supervisor.Status) StatusResponse {
	resp := StatusResponse{
		Running:        st.Stats.Running,
		TotalHashes:    st.Stats.TotalHashes,
		CurrentRate:    st.Stats.CurrentRate,
		AcceptedShares: st.Stats.AcceptedShares,
		Uptime:         "00:00:00",
		RateHistory:    st.Stats.RateHistory,
		ScreenOn:       st.ScreenOn,
		TemperatureC:   st.Temperature,
		BTCPriceUSD:    st.Network.BTCPriceUSD,
		BlockHeight:    st.Network.BlockHeight,
		Difficulty:     st.Network.DifficultyLabel,
		NetworkHash:    st.Network.NetworkHashrateLabel,
	}
	if resp.RateHistory == nil {
		resp.RateHistory = []float64{}
	}
	if st.Stats.Running && !st.Stats.StartTime.IsZero() {
		resp.Uptime = render.FormatUptime(st.Now.Sub(st.Stats.StartTime))
	}
	if !st.Network.LastFetchedAt.IsZero() {
		t := st.Network.LastFetchedAt.UTC()
		resp.LastFetchedAt = &t
	}
	return resp
}

// handleStatus returns the current snapshot.
// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewStatusResponse(s.provider.Status()))
}

// handleHealth is a liveness probe.
// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
