// Package httpapi exposes the voting machine over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	logadapter "github.com/bft-labs/votebox/internal/adapters/log"
	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/domain"
	"github.com/bft-labs/votebox/internal/ports"
)

// Tabulator is the part of the controller the server drives.
type Tabulator interface {
	CastVote(ctx context.Context, req app.VoteRequest) (domain.Outcome, error)
	ReadState(ctx context.Context) (domain.VotingState, error)
}

// Server serves the voting API.
type Server struct {
	tab    Tabulator
	logger ports.Logger
	engine *gin.Engine
}

// NewServer builds the routes. A nil logger discards output.
func NewServer(tab Tabulator, logger ports.Logger) *Server {
	s := &Server{tab: tab, logger: logadapter.OrNoop(logger)}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.POST("/votes", s.castVote)
	r.GET("/state", s.state)
	r.GET("/scores", s.scores)
	r.GET("/voters", s.voters)

	s.engine = r
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", ports.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type voteBody struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
}

type outcomeResponse struct {
	Outcome   string `json:"outcome"`
	Voter     string `json:"voter"`
	Candidate string `json:"candidate,omitempty"`
}

type scoresResponse struct {
	Scores  map[string]int `json:"scores"`
	Blank   int            `json:"blank"`
	Invalid int            `json:"invalid"`
}

type votersResponse struct {
	Voters []string `json:"voters"`
}

type stateResponse struct {
	Voters     []string       `json:"voters"`
	Scoreboard scoresResponse `json:"scoreboard"`
}

func (s *Server) castVote(c *gin.Context) {
	var body voteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	req := app.VoteRequest{
		Voter:     strings.TrimSpace(body.Voter),
		Candidate: strings.TrimSpace(body.Candidate),
	}
	if req.Voter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voter is required"})
		return
	}

	out, err := s.tab.CastVote(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, outcomeResponse{
		Outcome:   out.Kind.String(),
		Voter:     string(out.Voter),
		Candidate: string(out.Candidate),
	})
}

func (s *Server) state(c *gin.Context) {
	st, err := s.tab.ReadState(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse{Voters: voterNames(st), Scoreboard: scoreboardOf(st)})
}

func (s *Server) scores(c *gin.Context) {
	st, err := s.tab.ReadState(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scoreboardOf(st))
}

func (s *Server) voters(c *gin.Context) {
	st, err := s.tab.ReadState(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, votersResponse{Voters: voterNames(st)})
}

// fail maps storage errors to status codes.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrStorageUnavailable) {
		status = http.StatusServiceUnavailable
	}
	s.logger.Error("request failed",
		ports.String("path", c.FullPath()),
		ports.Int("status", status),
		ports.Err(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			ports.String("method", c.Request.Method),
			ports.String("path", c.Request.URL.Path),
			ports.Int("status", c.Writer.Status()),
			ports.Any("duration", time.Since(start)))
	}
}

func voterNames(st domain.VotingState) []string {
	voters := st.Voters()
	out := make([]string, len(voters))
	for i, v := range voters {
		out[i] = string(v)
	}
	return out
}

func scoreboardOf(st domain.VotingState) scoresResponse {
	sc := make(map[string]int, len(st.Scoreboard.Scores))
	for c, n := range st.Scoreboard.Scores {
		sc[string(c)] = n
	}
	return scoresResponse{Scores: sc, Blank: st.Scoreboard.Blank, Invalid: st.Scoreboard.Invalid}
}
