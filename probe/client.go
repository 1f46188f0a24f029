package probe

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/arcana-cloud/api-contract-tests/logging"

	"github.com/bytedance/sonic"
)

// requestGrace is added on top of the connect timeout to bound the total
// request time, so a server that accepts the connection but never answers
// cannot hang the run.
const requestGrace = 5 * time.Second

// Result is the observable outcome of a single HTTP probe: what came back
// and how long it took. A Result is only produced when the server answered;
// transport problems are returned as errors instead.
type Result struct {
	StatusCode int
	Body       string
	Elapsed    time.Duration
}

// Request describes one HTTP call to the service under test. Body, if
// non-nil, is marshaled as JSON. Headers are added after the Content-Type
// header and may override it.
type Request struct {
	Method  string
	URL     string
	Body    interface{}
	Headers map[string]string
}

// Client issues probe requests against a service under test. It enforces a
// connect timeout plus an overall deadline, and logs each exchange to a
// debug logger including a copy-pasteable curl command line.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

func NewClient(connectTimeout time.Duration, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: connectTimeout + requestGrace,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		logger: logger,
	}
}

// Do performs the request and returns the response status, body, and elapsed
// time. The logger argument overrides the client's own logger for this one
// call; pass nil to use the default.
func (c *Client) Do(req Request, logger logging.Logger) (Result, error) {
	if logger == nil {
		logger = c.logger
	}

	var data []byte
	if req.Body != nil {
		var err error
		data, err = sonic.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	logger.Printf("Reproduce with: %s", curlCommand(req.Method, req.URL, data, req.Headers))

	var bodyReader io.Reader
	if data != nil {
		bodyReader = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequest(req.Method, req.URL, bodyReader)
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for _, k := range sortedKeys(req.Headers) {
		httpReq.Header.Set(k, req.Headers[k])
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		logger.Printf("Request failed after %s: %s", elapsed, err)
		return Result{Elapsed: elapsed}, err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	elapsed = time.Since(start)
	if err != nil {
		logger.Printf("Reading response body failed: %s", err)
		return Result{Elapsed: elapsed}, err
	}

	logger.Printf("Got %d from %s %s in %s (%d bytes)",
		resp.StatusCode, req.Method, req.URL, elapsed, len(respData))

	return Result{
		StatusCode: resp.StatusCode,
		Body:       string(respData),
		Elapsed:    elapsed,
	}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
