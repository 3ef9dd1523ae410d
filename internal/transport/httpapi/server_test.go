package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bft-labs/votebox/internal/adapters/memory"
	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := domain.NewVotingState([]domain.Candidate{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("NewVotingState: %v", err)
	}
	return NewServer(app.NewController(memory.NewStore(st), nil), nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestCastVote(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name          string
		body          string
		wantOutcome   string
		wantCandidate string
	}{
		{"accepted", `{"voter": " Claude ", "candidate": " Alice "}`, "accepted", "Alice"},
		{"already voted", `{"voter": "Claude", "candidate": "Bob"}`, "already_voted", ""},
		{"blank", `{"voter": "Dana", "candidate": ""}`, "blank", ""},
		{"blank when omitted", `{"voter": "Fred"}`, "blank", ""},
		{"invalid", `{"voter": "Eve", "candidate": "Carol"}`, "invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/votes", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			var got outcomeResponse
			decode(t, rec, &got)
			if got.Outcome != tt.wantOutcome || got.Candidate != tt.wantCandidate {
				t.Errorf("response = %+v, want outcome %s candidate %q", got, tt.wantOutcome, tt.wantCandidate)
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/scores", "")
	var sc scoresResponse
	decode(t, rec, &sc)
	if sc.Scores["Alice"] != 1 || sc.Scores["Bob"] != 0 || sc.Blank != 2 || sc.Invalid != 1 {
		t.Errorf("scores = %+v, want Alice=1 Bob=0 blank=2 invalid=1", sc)
	}
}

func TestCastVote_BadRequests(t *testing.T) {
	h := newTestServer(t).Handler()

	for _, body := range []string{`{not json`, `{"voter": "   ", "candidate": "Alice"}`, `{"candidate": "Alice"}`} {
		rec := do(t, h, http.MethodPost, "/votes", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", body, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/voters", "")
	var vr votersResponse
	decode(t, rec, &vr)
	if len(vr.Voters) != 0 {
		t.Errorf("voters = %v after rejected requests, want none", vr.Voters)
	}
}

func TestState(t *testing.T) {
	h := newTestServer(t).Handler()
	do(t, h, http.MethodPost, "/votes", `{"voter": "zed", "candidate": "Bob"}`)
	do(t, h, http.MethodPost, "/votes", `{"voter": "amy", "candidate": "Bob"}`)

	rec := do(t, h, http.MethodGet, "/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var st stateResponse
	decode(t, rec, &st)
	if len(st.Voters) != 2 || st.Voters[0] != "amy" || st.Voters[1] != "zed" {
		t.Errorf("voters = %v, want [amy zed]", st.Voters)
	}
	if st.Scoreboard.Scores["Bob"] != 2 {
		t.Errorf("scoreboard = %+v, want Bob=2", st.Scoreboard)
	}
}

type brokenTabulator struct{ err error }

func (b brokenTabulator) CastVote(context.Context, app.VoteRequest) (domain.Outcome, error) {
	return domain.Outcome{}, b.err
}

func (b brokenTabulator) ReadState(context.Context) (domain.VotingState, error) {
	return domain.VotingState{}, b.err
}

func TestStorageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unavailable", fmt.Errorf("%w: disk gone", domain.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{"malformed", fmt.Errorf("%w: bad counts", domain.ErrMalformedState), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewServer(brokenTabulator{err: tt.err}, nil).Handler()

			for _, r := range []struct{ method, path, body string }{
				{http.MethodPost, "/votes", `{"voter": "Claude", "candidate": "Alice"}`},
				{http.MethodGet, "/state", ""},
				{http.MethodGet, "/scores", ""},
				{http.MethodGet, "/voters", ""},
			} {
				rec := do(t, h, r.method, r.path, r.body)
				if rec.Code != tt.want {
					t.Errorf("%s %s: status = %d, want %d", r.method, r.path, rec.Code, tt.want)
				}
			}
		})
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- newTestServer(t).ListenAndServe(ctx, "127.0.0.1:0")
	}()

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("ListenAndServe() error = %v, want nil after cancel", err)
	}
}
