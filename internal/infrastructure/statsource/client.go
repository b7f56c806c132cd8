// Package statsource implements the upstream box-score provider against
// the stats.nba.com JSON API. Responses come back as tabular result sets
// (a header row plus untyped value rows), so decoding goes through a
// header-index lookup rather than struct tags.
package statsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
	"github.com/courtvision/fantasy-hoops/internal/platform/resilience"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

const (
	defaultBaseURL     = "https://stats.nba.com"
	maxResponseBytes   = 16 << 20
	gameDateLayout     = "Jan 02, 2006"
	defaultSeasonType  = "Regular Season"
	defaultLeagueParam = "00"
)

type Client struct {
	httpClient     *http.Client
	baseURL        string
	season         string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

var _ usecase.StatProvider = (*Client)(nil)

func NewClient(httpClient *http.Client, baseURL, season string, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logging.Default()
	}

	breakerCfg := resilience.DefaultCircuitBreakerConfig()

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		season:         season,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListActivePlayers returns the current-season player pool.
func (c *Client) ListActivePlayers(ctx context.Context) ([]player.Player, error) {
	params := url.Values{}
	params.Set("LeagueID", defaultLeagueParam)
	params.Set("Season", c.season)
	params.Set("IsOnlyCurrentSeason", "1")

	set, err := c.fetchResultSet(ctx, "/stats/commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}

	out := make([]player.Player, 0, len(set.rows))
	for _, row := range set.rows {
		rosterStatus := set.intAt(row, "ROSTERSTATUS")
		p := player.Player{
			ID:       int64(set.intAt(row, "PERSON_ID")),
			FullName: set.stringAt(row, "DISPLAY_FIRST_LAST"),
			TeamAbbr: set.stringAt(row, "TEAM_ABBREVIATION"),
			IsActive: rosterStatus == 1,
		}
		if err := p.Validate(); err != nil {
			c.logger.WarnContext(ctx, "skipping malformed player row", "error", err)
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// ListGameLogs returns one player's box scores for the configured season,
// optionally restricted to games on or after since.
func (c *Client) ListGameLogs(ctx context.Context, playerID int64, since time.Time) ([]gamestat.GameStat, error) {
	params := url.Values{}
	params.Set("PlayerID", strconv.FormatInt(playerID, 10))
	params.Set("Season", c.season)
	params.Set("SeasonType", defaultSeasonType)
	if !since.IsZero() {
		params.Set("DateFrom", since.Format("01/02/2006"))
	}

	set, err := c.fetchResultSet(ctx, "/stats/playergamelog", params)
	if err != nil {
		return nil, fmt.Errorf("list game logs for player %d: %w", playerID, err)
	}

	out := make([]gamestat.GameStat, 0, len(set.rows))
	for _, row := range set.rows {
		gameDate, err := parseGameDate(set.stringAt(row, "GAME_DATE"))
		if err != nil {
			c.logger.WarnContext(ctx, "skipping game log with bad date",
				"player_id", playerID,
				"game_id", set.stringAt(row, "Game_ID"),
				"error", err,
			)
			continue
		}

		out = append(out, gamestat.GameStat{
			PlayerID:    playerID,
			GameID:      set.stringAt(row, "Game_ID"),
			GameDate:    gameDate,
			Matchup:     set.stringAt(row, "MATCHUP"),
			Points:      set.intAt(row, "PTS"),
			Rebounds:    set.intAt(row, "REB"),
			Assists:     set.intAt(row, "AST"),
			Steals:      set.intAt(row, "STL"),
			Blocks:      set.intAt(row, "BLK"),
			FGMade:      set.intAt(row, "FGM"),
			FGAttempted: set.intAt(row, "FGA"),
			FTMade:      set.intAt(row, "FTM"),
			FTAttempted: set.intAt(row, "FTA"),
			ThreesMade:  set.intAt(row, "FG3M"),
			Turnovers:   set.intAt(row, "TOV"),
		})
	}

	return out, nil
}

type statsResponse struct {
	ResultSets []struct {
		Name    string   `json:"name"`
		Headers []string `json:"headers"`
		RowSet  [][]any  `json:"rowSet"`
	} `json:"resultSets"`
}

type resultSet struct {
	index map[string]int
	rows  [][]any
}

func (s resultSet) stringAt(row []any, header string) string {
	i, ok := s.index[header]
	if !ok || i >= len(row) {
		return ""
	}
	v, _ := row[i].(string)
	return v
}

func (s resultSet) intAt(row []any, header string) int {
	i, ok := s.index[header]
	if !ok || i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func (c *Client) fetchResultSet(ctx context.Context, path string, params url.Values) (resultSet, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stat source circuit breaker rejected request",
				"path", path,
				"state", string(c.breaker.State()),
			)
			return resultSet{}, fmt.Errorf("%w: stat source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		// Not an upstream fault; release the half-open slot.
		c.recordSuccess()
		return resultSet{}, fmt.Errorf("create request: %w", err)
	}
	// stats.nba.com rejects requests without browser-looking headers.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return resultSet{}, fmt.Errorf("%w: request %s: %v", usecase.ErrDependencyUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.recordFailure()
		return resultSet{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		return resultSet{}, fmt.Errorf("%w: %s answered status %d", usecase.ErrDependencyUnavailable, path, resp.StatusCode)
	}
	// A 200 with an unexpected body shape counts against the decoder, not
	// the breaker.
	c.recordSuccess()

	var decoded statsResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return resultSet{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.ResultSets) == 0 {
		return resultSet{}, fmt.Errorf("response has no result sets")
	}

	first := decoded.ResultSets[0]
	index := make(map[string]int, len(first.Headers))
	for i, header := range first.Headers {
		index[header] = i
	}

	return resultSet{index: index, rows: first.RowSet}, nil
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

// parseGameDate handles the upstream "NOV 05, 2025" format, which is
// uppercase and so never matches time.Parse directly.
func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("game date is empty")
	}

	if len(raw) > 1 {
		raw = raw[:1] + strings.ToLower(raw[1:])
	}
	return time.Parse(gameDateLayout, raw)
}
