package easports

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

const clubOneMatches = `[
  {
    "matchId": "9001",
    "timestamp": 1767225600,
    "clubs": {
      "3383": {"score": "4", "details": {"name": "Harbor Hawks", "clubId": 3383}},
      "4388": {"score": 2, "details": {"name": "Bay Bears", "clubId": 4388}}
    },
    "players": {
      "4388": {
        "77": {"goals": "2", "assists": 0, "shots": 5, "timeOnIce": "1200", "plusMinus": -1},
        "31": {"goals": 0, "assists": 0, "saves": "28", "goalsAgainst": 4, "timeOnIce": 3600}
      },
      "3383": {
        "12": {"goals": 3, "assists": "1", "points": 99, "shots": 7, "penaltyMinutes": 2, "plusMinus": 2},
        "30": {"saves": 20}
      }
    }
  }
]`

const clubTwoMatches = `[
  {"matchId": "9001", "timestamp": 1767225600, "clubs": {}, "players": {}},
  {"matchId": "9002", "timestamp": 1767312000, "clubs": {}, "players": {"4388": {"77": {"goals": 1}}}}
]`

func newTestClient(t *testing.T, baseURL string, clubs []int64, mutate func(*ClientConfig)) *Client {
	t.Helper()

	cfg := ClientConfig{
		BaseURL:      baseURL,
		ClubIDs:      clubs,
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_GetGameStats_NormalizesMatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clubs/matches" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("platform") != defaultPlatform || query.Get("matchType") != "club_private" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != defaultUserAgent {
			t.Errorf("unexpected user agent: %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(clubOneMatches))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{3383}, nil)

	stats, err := client.GetGameStats(context.Background(), "9001")
	if err != nil {
		t.Fatalf("GetGameStats error: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("expected 4 stat lines, got %d", len(stats))
	}

	order := []string{"3383/12", "3383/30", "4388/31", "4388/77"}
	for i, stat := range stats {
		if got := stat.TeamID + "/" + stat.PlayerID; got != order[i] {
			t.Fatalf("line %d: got %s want %s", i, got, order[i])
		}
		if stat.GameID != "9001" || stat.Source != "EA_SPORTS" {
			t.Fatalf("unexpected identity on line %d: %+v", i, stat)
		}
	}

	skater := stats[0]
	if skater.Goals != 3 || skater.Assists != 1 || skater.Points != 4 || skater.PenaltyMinutes != 2 || skater.Saves != nil {
		t.Fatalf("unexpected skater line: %+v", skater)
	}
	goalieNoGA := stats[1]
	if goalieNoGA.Saves == nil || *goalieNoGA.Saves != 20 || goalieNoGA.GoalsAgainst == nil || *goalieNoGA.GoalsAgainst != 0 {
		t.Fatalf("unexpected goalie line: %+v", goalieNoGA)
	}
	goalie := stats[2]
	if *goalie.Saves != 28 || *goalie.GoalsAgainst != 4 || goalie.TimeOnIce != 3600 {
		t.Fatalf("unexpected goalie line: %+v", goalie)
	}
	if stats[3].PlusMinus != -1 || stats[3].TimeOnIce != 1200 {
		t.Fatalf("unexpected skater line: %+v", stats[3])
	}

	if _, err := client.GetGameStats(context.Background(), "404"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchAllMatches_SkipsFailingClubAndCaches(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Query().Get("clubIds") {
		case "3383":
			_, _ = w.Write([]byte(clubOneMatches))
		case "4388":
			_, _ = w.Write([]byte(clubTwoMatches))
		default:
			http.Error(w, "club not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{3383, 999, 4388}, nil)

	matches, err := client.FetchAllMatches(context.Background())
	if err != nil {
		t.Fatalf("FetchAllMatches error: %v", err)
	}
	if len(matches) != 2 || matches[0].MatchID != "9001" || matches[1].MatchID != "9002" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if len(matches[0].Clubs) != 2 || matches[0].Clubs[0].ClubID != 3383 || matches[0].Clubs[0].Goals != 4 {
		t.Fatalf("unexpected clubs: %+v", matches[0].Clubs)
	}
	if matches[0].PlayedAt.IsZero() {
		t.Fatalf("expected match timestamp")
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}

	if _, err := client.GetTeamStats(context.Background(), "4388"); err != nil {
		t.Fatalf("GetTeamStats error: %v", err)
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected cached matches to be reused, got %d requests", got)
	}

	playerLines, err := client.GetPlayerStats(context.Background(), "77")
	if err != nil {
		t.Fatalf("GetPlayerStats error: %v", err)
	}
	if len(playerLines) != 2 {
		t.Fatalf("expected player 77 in two matches, got %d", len(playerLines))
	}

	if err := client.AddClubID(765); err != nil {
		t.Fatalf("AddClubID error: %v", err)
	}
	if _, err := client.FetchAllMatches(context.Background()); err != nil {
		t.Fatalf("FetchAllMatches error: %v", err)
	}
	if got := requests.Load(); got != 7 {
		t.Fatalf("club change should refetch all clubs, got %d requests", got)
	}
}

func TestClient_FetchAllMatches_AllClubsFailing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{3383, 4388}, nil)
	if _, err := client.FetchAllMatches(context.Background()); err == nil {
		t.Fatalf("expected error when every club fails")
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(clubTwoMatches))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{4388}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
	})

	matches, err := client.FetchClubMatches(context.Background(), 4388)
	if err != nil {
		t.Fatalf("FetchClubMatches error: %v", err)
	}
	if len(matches) != 2 || requests.Load() != 3 {
		t.Fatalf("unexpected result: matches=%d requests=%d", len(matches), requests.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{4388}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})
	if _, err := client.FetchClubMatches(context.Background(), 4388); err == nil {
		t.Fatalf("expected error")
	}
	if requests.Load() != 1 {
		t.Fatalf("expected a single request, got %d", requests.Load())
	}
}

func TestClient_RejectsOversizedResponse(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(clubOneMatches))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, []int64{3383}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
		cfg.MaxResponseBytes = 64
	})

	_, err := client.FetchClubMatches(context.Background(), 3383)
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}
	if requests.Load() != 1 {
		t.Fatalf("oversized response must not be retried, got %d requests", requests.Load())
	}
}

func TestClient_CircuitBreakerOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var opened atomic.Value
	client := newTestClient(t, server.URL, []int64{4388}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
			OnStateChange: func(name string, _, to resilience.CircuitState) {
				if to == resilience.CircuitStateOpen {
					opened.Store(name)
				}
			},
		}
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchClubMatches(context.Background(), 4388); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}
	_, err := client.FetchClubMatches(context.Background(), 4388)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if requests.Load() != 2 {
		t.Fatalf("open breaker must not reach the server, got %d requests", requests.Load())
	}
	if got, _ := opened.Load().(string); got != "ea_sports" {
		t.Fatalf("expected open transition reported for ea_sports, got %q", got)
	}
}

func TestClient_ValidateConnection(t *testing.T) {
	t.Parallel()

	var lastClub atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastClub.Store(r.URL.Query().Get("clubIds"))
		if r.URL.Query().Get("clubIds") == "765" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))

	client := newTestClient(t, server.URL, []int64{490}, nil)
	if !client.ValidateConnection(context.Background()) {
		t.Fatalf("expected connection to validate")
	}
	if lastClub.Load() != "490" {
		t.Fatalf("expected probe on first tracked club, got %v", lastClub.Load())
	}

	client.RemoveClubID(490)
	if !client.ValidateConnection(context.Background()) {
		t.Fatalf("expected connection to validate with fallback club")
	}
	if lastClub.Load() != "3383" {
		t.Fatalf("expected fallback probe club 3383, got %v", lastClub.Load())
	}

	if err := client.SetClubIDs([]int64{765}); err != nil {
		t.Fatalf("SetClubIDs error: %v", err)
	}
	if client.ValidateConnection(context.Background()) {
		t.Fatalf("expected 404 to report disconnected")
	}

	server.Close()
	if client.ValidateConnection(context.Background()) {
		t.Fatalf("expected closed server to report disconnected")
	}
}

func TestClient_ClubSet(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if got := client.ClubIDs(); len(got) != 4 || got[0] != 3383 {
		t.Fatalf("unexpected default clubs: %v", got)
	}

	if err := client.AddClubID(3383); err != nil {
		t.Fatalf("AddClubID error: %v", err)
	}
	if len(client.ClubIDs()) != 4 {
		t.Fatalf("adding a tracked club must not duplicate it")
	}
	if err := client.AddClubID(0); err == nil {
		t.Fatalf("expected zero club id to be rejected")
	}
	if err := client.SetClubIDs([]int64{10, -1}); err == nil {
		t.Fatalf("expected negative club id to be rejected")
	}
	if len(client.ClubIDs()) != 4 {
		t.Fatalf("rejected update must keep the previous set")
	}

	ids := client.ClubIDs()
	ids[0] = 1
	if client.ClubIDs()[0] != 3383 {
		t.Fatalf("ClubIDs must return a copy")
	}
}
