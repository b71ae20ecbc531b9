// Package random provides the random-number sources the board optimizer
// consumes: seeded math/rand sources for reproducible runs, a crypto/rand
// source, and seed resolution through random.org when an API key is set.
package random

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	mathrand "math/rand"
	"net/http"
	"time"
)

// Source is the randomness capability the tiling core depends on.
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// New returns a deterministic source for seed.
func New(seed int64) *mathrand.Rand {
	return mathrand.New(mathrand.NewSource(seed))
}

// Derive returns a deterministic source for one of several independent runs
// sharing a base seed.
func Derive(seed int64, run int) *mathrand.Rand {
	return New(seed + int64(run)*7919)
}

// Crypto draws from crypto/rand. It is not reproducible.
type Crypto struct{}

// Float64 returns a random float64 in [0, 1).
func (Crypto) Float64() float64 {
	return cryptoRandFloat()
}

// Intn returns a random int in [0, n). It panics if n <= 0.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	// Rejection threshold keeps the result unbiased.
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		v := cryptoRandUint64()
		if v < limit {
			return int(v % bound)
		}
	}
}

// Client fetches seeds from random.org.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: "https://api.random.org/json-rpc/4/invoke",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed requests one positive seed from random.org.
func (c *Client) Seed() (int64, error) {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      2,
			"min":    0,
			"max":    1<<30 - 1,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []int64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	if result.Error != nil {
		return 0, fmt.Errorf("random.org: %s", result.Error.Message)
	}
	data := result.Result.Random.Data
	if len(data) < 2 {
		return 0, fmt.Errorf("random.org: short response (%d values)", len(data))
	}

	// Two 30-bit draws make a 60-bit seed.
	seed := data[0]<<30 | data[1]
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// ResolveSeed returns seed unchanged unless it is 0, in which case a fresh
// seed is drawn from random.org (when c is enabled) or crypto/rand.
func ResolveSeed(seed int64, c *Client) int64 {
	if seed != 0 {
		return seed
	}
	if c.Enabled() {
		s, err := c.Seed()
		if err == nil {
			slog.Debug("seed drawn from random.org", "seed", s)
			return s
		}
		slog.Warn("random.org seed failed, using crypto/rand", "error", err)
	}
	s := int64(cryptoRandUint64() >> 2)
	if s == 0 {
		s = 1
	}
	return s
}

func cryptoRandUint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Sprintf("random: crypto/rand: %v", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// cryptoRandFloat uses the top 53 bits for a uniform float64 in [0, 1).
func cryptoRandFloat() float64 {
	n := cryptoRandUint64() >> 11
	return float64(n) / float64(1<<53)
}
