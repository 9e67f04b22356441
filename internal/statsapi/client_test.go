package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, ClientConfig{
		MaxRetries:        3,
		RetryDelayBase:    time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             10,
	})
}

const liveFeedJSON = `{
  "gamePk": 745123,
  "gameData": {
    "teams": {
      "away": {"id": 136, "name": "Seattle Mariners", "teamName": "Mariners", "abbreviation": "SEA"},
      "home": {"id": 117, "name": "Houston Astros", "teamName": "Astros", "abbreviation": "HOU"}
    },
    "status": {"abstractGameState": "Live", "detailedState": "In Progress"}
  },
  "liveData": {
    "plays": {
      "allPlays": [
        {
          "result": {"type": "atBat", "event": "Single", "description": "Julio Rodriguez singles on a line drive.", "rbi": 0, "awayScore": 0, "homeScore": 0},
          "about": {"atBatIndex": 0, "halfInning": "top", "isTopInning": true, "inning": 1, "isComplete": true},
          "count": {"balls": 1, "strikes": 1, "outs": 0},
          "matchup": {
            "batter": {"id": 677594, "fullName": "Julio Rodriguez"},
            "batSide": {"code": "R"},
            "pitcher": {"id": 664285, "fullName": "Framber Valdez"},
            "pitchHand": {"code": "L"}
          },
          "playEvents": [
            {"index": 0, "isPitch": true, "type": "pitch", "pitchNumber": 1, "details": {"description": "Ball", "call": {"code": "B"}}},
            {"index": 1, "isPitch": true, "type": "pitch", "pitchNumber": 2, "details": {"description": "Called Strike", "call": {"code": "C"}}},
            {"index": 2, "isPitch": true, "type": "pitch", "pitchNumber": 3, "details": {"description": "In play, no out", "call": {"code": "D"}, "isInPlay": true}}
          ]
        }
      ],
      "currentPlay": {
        "result": {"type": "atBat"},
        "about": {"atBatIndex": 1, "halfInning": "top", "isTopInning": true, "inning": 1},
        "count": {"balls": 0, "strikes": 0, "outs": 0},
        "matchup": {"batter": {"id": 1, "fullName": "Cal Raleigh"}, "pitcher": {"id": 664285, "fullName": "Framber Valdez"}}
      }
    },
    "linescore": {"currentInning": 1, "isTopInning": true, "teams": {"away": {"runs": 0, "hits": 1}, "home": {"runs": 0}}}
  }
}`

func TestFetchGameFeed(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.1/game/745123/feed/live" {
			t.Errorf("Expected feed path, got %s", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected Accept header application/json, got %s", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(liveFeedJSON))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	feed, err := client.FetchGameFeed(context.Background(), 745123)
	if err != nil {
		t.Fatalf("FetchGameFeed failed: %v", err)
	}

	if feed.GamePk != 745123 {
		t.Errorf("Expected game pk 745123, got %d", feed.GamePk)
	}
	if feed.GameData.Teams.Away.Abbreviation != "SEA" {
		t.Errorf("Expected away team SEA, got %s", feed.GameData.Teams.Away.Abbreviation)
	}
	if len(feed.AllPlays()) != 1 {
		t.Fatalf("Expected 1 play, got %d", len(feed.AllPlays()))
	}
	if got := len(feed.AllPlays()[0].PlayEvents); got != 3 {
		t.Errorf("Expected 3 play events, got %d", got)
	}
	if feed.CurrentAtBatIndex() != 1 {
		t.Errorf("Expected current at-bat index 1, got %d", feed.CurrentAtBatIndex())
	}
	if feed.LiveData.Linescore == nil || feed.LiveData.Linescore.Teams.Away.Hits != 1 {
		t.Errorf("Expected linescore with 1 away hit, got %+v", feed.LiveData.Linescore)
	}
}

func TestFetchWinProbability(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/game/745123/winProbability" {
			t.Errorf("Expected win probability path, got %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"atBatIndex": 0, "about": {"inning": 1, "isTopInning": true}, "homeTeamWinProbability": 52.1, "awayTeamWinProbability": 47.9, "homeTeamWinProbabilityAdded": 2.1, "leverageIndex": 0.87},
			{"atBatIndex": 1, "about": {"inning": 1, "isTopInning": true}, "homeTeamWinProbability": 54.0, "awayTeamWinProbability": 46.0, "homeTeamWinProbabilityAdded": 1.9}
		]`))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	doc, err := client.FetchWinProbability(context.Background(), 745123)
	if err != nil {
		t.Fatalf("FetchWinProbability failed: %v", err)
	}
	if len(doc) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(doc))
	}
	if doc[0].LeverageIndex == nil || *doc[0].LeverageIndex != 0.87 {
		t.Errorf("Expected leverage index 0.87, got %v", doc[0].LeverageIndex)
	}
	if doc[1].LeverageIndex != nil {
		t.Errorf("Expected missing leverage index, got %v", *doc[1].LeverageIndex)
	}
}

func TestFetchSchedule(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schedule" {
			t.Errorf("Expected schedule path, got %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("sportId") != "1" {
			t.Errorf("Expected sportId=1, got %s", query.Get("sportId"))
		}
		if query.Get("date") != "2026-07-04" {
			t.Errorf("Expected date=2026-07-04, got %s", query.Get("date"))
		}
		w.Write([]byte(`{
			"totalGames": 2,
			"dates": [{
				"date": "2026-07-04",
				"games": [
					{"gamePk": 1, "gameDate": "2026-07-04T17:05:00Z", "status": {"abstractGameState": "Final"},
					 "teams": {"away": {"team": {"id": 136, "name": "Seattle Mariners"}, "score": 3}, "home": {"team": {"id": 117, "name": "Houston Astros"}, "score": 5}}},
					{"gamePk": 2, "gameDate": "2026-07-04T23:10:00Z", "status": {"abstractGameState": "Preview"},
					 "teams": {"away": {"team": {"id": 121, "name": "New York Mets"}}, "home": {"team": {"id": 143, "name": "Philadelphia Phillies"}}}}
				]
			}]
		}`))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	date := time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)
	schedule, err := client.FetchSchedule(context.Background(), date)
	if err != nil {
		t.Fatalf("FetchSchedule failed: %v", err)
	}

	games := schedule.Games()
	if len(games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(games))
	}
	if games[0].Teams.Home.Score == nil || *games[0].Teams.Home.Score != 5 {
		t.Errorf("Expected home score 5, got %v", games[0].Teams.Home.Score)
	}
	if games[1].Teams.Away.Score != nil {
		t.Errorf("Expected no score for preview game")
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	_, err := client.FetchGameFeed(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", calls.Load())
	}
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	doc, err := client.FetchWinProbability(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if len(doc) != 0 {
		t.Errorf("Expected empty document, got %d elements", len(doc))
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 requests, got %d", calls.Load())
	}
}

func TestMaxRetriesExceeded(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	_, err := client.FetchGameFeed(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
		t.Errorf("Expected wrapped 502 StatusError, got %v", err)
	}
}

func TestNoBackoffAfterLastAttempt(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	// One backoff of 300ms between the two attempts, none after the second
	client := NewClient(mockServer.URL, 5*time.Second, ClientConfig{
		MaxRetries:        2,
		RetryDelayBase:    300 * time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             10,
	})

	start := time.Now()
	_, err := client.FetchGameFeed(context.Background(), 1)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected error")
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 requests, got %d", calls.Load())
	}
	if elapsed >= 550*time.Millisecond {
		t.Errorf("Expected no sleep after the final attempt, took %v", elapsed)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	if _, err := client.FetchSchedule(context.Background(), time.Now()); err == nil {
		t.Fatal("Expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", calls.Load())
	}
}

func TestCanceledContext(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := testClient(mockServer.URL)
	if _, err := client.FetchWinProbability(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
