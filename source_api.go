package annuaire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// defaultAPITimeout bounds one full Read of the remote API, pagination
// included. A timed-out call is indistinguishable from an empty result as far
// as the fallback chain is concerned.
const defaultAPITimeout = 10 * time.Second

// apiPageLimit is the page size requested from the remote API. The collaborator
// contract exposes page/limit parameters but no total count, so a short page is
// the only termination signal.
const apiPageLimit = 50

// apiBusinessesResponse is the remote API's envelope.
type apiBusinessesResponse struct {
	Businesses []*APIEntry `json:"businesses"`
}

// APIReader reads business entries from the remote directory API. It issues
// no retries; retrying is the transport collaborator's concern.
type APIReader struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIReader creates a reader against the given base URL. A nil client gets
// a pooled default with the bounded timeout.
func NewAPIReader(baseURL string, client *http.Client) *APIReader {
	if client == nil {
		transport := &http.Transport{
			MaxIdleConns:        10,
			MaxConnsPerHost:     5,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		}
		client = &http.Client{
			Timeout:   defaultAPITimeout,
			Transport: transport,
		}
	}
	return &APIReader{
		baseURL:    baseURL,
		httpClient: client,
		// One page burst, five pages per second sustained. Keeps a large
		// paginated read from hammering the collaborator.
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Source implements Reader.
func (r *APIReader) Source() SourceID { return SourceAPI }

// Read fetches every page of the businesses listing. Any transport error or
// non-2xx status maps to ErrConnectionFailed, a well-formed but empty listing
// maps to ErrEmptyResult.
func (r *APIReader) Read(ctx context.Context) ([]RawEntry, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("%w: no base URL configured", ErrConnectionFailed)
	}

	var entries []RawEntry
	for page := 1; ; page++ {
		batch, err := r.readPage(ctx, page)
		if err != nil {
			return nil, err
		}
		for _, e := range batch {
			entries = append(entries, e)
		}
		if len(batch) < apiPageLimit {
			break
		}
	}

	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}
	return entries, nil
}

func (r *APIReader) readPage(ctx context.Context, page int) ([]*APIEntry, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	u, err := url.Parse(r.baseURL + "/businesses")
	if err != nil {
		return nil, fmt.Errorf("%w: bad base URL %q", ErrConnectionFailed, r.baseURL)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(apiPageLimit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", ErrConnectionFailed, resp.StatusCode, u.Host)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrConnectionFailed, err)
	}

	var parsed apiBusinessesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding businesses page %d: %v", ErrParseFailure, page, err)
	}
	return parsed.Businesses, nil
}
