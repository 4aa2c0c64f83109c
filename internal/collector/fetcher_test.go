package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerSignal/internal/analysis"
	"TickerSignal/internal/model"
)

const yahooFixture = `{"chart":{"result":[{
  "timestamp":[1704326400,1704153600,1704240000,1704412800],
  "indicators":{"quote":[{
    "open":[102,100,101,null],
    "high":[103,101,102,null],
    "low":[101,99,100,null],
    "close":[102.5,100.5,101.5,null],
    "volume":[1200,1000,1100,null]
  }]}
}],"error":null}}`

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(yahooFixture))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchDailyBars(context.Background(), "SPX500", 60)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Equal(t, "interval=1d&range=3mo", gotQuery)
	require.Len(t, bars, 3, "null close bar must be skipped")
	assert.Equal(t, time.Unix(1704153600, 0).UTC(), bars[0].Time)
	assert.Equal(t, []float64{100.5, 101.5, 102.5}, []float64{bars[0].Close, bars[1].Close, bars[2].Close})
	assert.Equal(t, 1000.0, bars[0].Volume)
}

func TestYahooFetcher_TrimsToRequestedBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(yahooFixture))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 102.5, bars[1].Close)
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http status", http.StatusTooManyRequests, "slow down"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher("")
			f.BaseURL = srv.URL
			_, err := f.FetchDailyBars(context.Background(), "AAPL", 30)
			assert.Error(t, err)
		})
	}
}

const yahooRestatedFixture = `{"chart":{"result":[{
  "timestamp":[1704153600,1704240000,1704326400,1704412800,1704326400,1704412800],
  "indicators":{"quote":[{
    "open":[100,101,102,103,102,103],
    "high":[101,102,103,104,103,104],
    "low":[99,100,101,102,101,102],
    "close":[100.5,101.5,102.5,103.5,202.5,203.5],
    "volume":[1000,1100,1200,1300,1200,1300]
  }]}
}],"error":null}}`

func TestYahooFetcher_RestatedBarsDoNotConsumeLookback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(yahooRestatedFixture))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 3)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, time.Unix(1704240000, 0).UTC(), bars[0].Time)
	assert.Equal(t, []float64{101.5, 202.5, 203.5}, []float64{bars[0].Close, bars[1].Close, bars[2].Close})

	all, err := f.FetchDailyBars(context.Background(), "AAPL", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4, "one bar per distinct day")
}

func TestYahooRange(t *testing.T) {
	assert.Equal(t, "1mo", yahooRange(20))
	assert.Equal(t, "6mo", yahooRange(100))
	assert.Equal(t, "1y", yahooRange(252))
	assert.Equal(t, "2y", yahooRange(300))
	assert.Equal(t, "5y", yahooRange(1000))
}

func TestRESTFetcher_FetchDailyBars(t *testing.T) {
	var gotAuth, gotSymbol, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSymbol = r.URL.Query().Get("symbol")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[
			{"timestamp":1704240000,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10},
			{"timestamp":1704153600,"open":1,"high":2,"low":0.5,"close":1.2,"volume":10}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 252)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, "252", gotLimit)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.2, bars[0].Close, "bars must be sorted oldest first")
	assert.Equal(t, "rest", f.Name())
}

func TestRESTFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "AAPL", 10)
	assert.ErrorContains(t, err, "status 500")
}

func TestRESTFetcher_RestatedBarsKeepLastSent(t *testing.T) {
	type bar struct {
		Timestamp int64   `json:"timestamp"`
		Close     float64 `json:"close"`
	}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var body []bar
	for i := 0; i < 40; i++ {
		body = append(body, bar{Timestamp: day.AddDate(0, 0, i).Unix(), Close: 100 + float64(i)})
	}
	for i := 0; i < 40; i++ {
		body = append(body, bar{Timestamp: day.AddDate(0, 0, i).Unix(), Close: 999})
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewCollector(NewRESTFetcher(srv.URL, "", ""), 80, analysis.Options{TailRows: 40})
	a, err := c.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 40, a.Points)
	require.Len(t, a.Tail, 40)
	for i, row := range a.Tail {
		assert.Equal(t, day.AddDate(0, 0, i), row.Time, "row %d", i)
		assert.Equal(t, 999.0, row.Close, "row %d", i)
	}
}

func TestOrderBars(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []model.PricePoint{
		{Time: day.AddDate(0, 0, 2), Close: 3},
		{Time: day, Close: 1},
		{Time: day.AddDate(0, 0, 1), Close: 2},
		{Time: day, Close: 10},
		{Time: day.AddDate(0, 0, 2), Close: 30},
		{Time: day, Close: 100},
	}
	out := orderBars(in)
	require.Len(t, out, 3)
	assert.Equal(t, []float64{100, 2, 30}, []float64{out[0].Close, out[1].Close, out[2].Close})
	assert.Empty(t, orderBars(nil))
}
