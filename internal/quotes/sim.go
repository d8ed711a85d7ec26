package quotes

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Update is one simulated price movement, as pushed to stream clients.
type Update struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change    float64         `json:"change"`
	Timestamp time.Time       `json:"timestamp"`
}

// Sim is a self-contained quote source driven by a random walk over a fixed
// universe of symbols. It backs dev mode and the websocket price stream.
type Sim struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
	names  map[string]string
	rng    *rand.Rand
}

func NewSim() *Sim {
	return &Sim{
		prices: map[string]decimal.Decimal{
			"AAPL":  decimal.NewFromFloat(150.00),
			"GOOGL": decimal.NewFromFloat(140.00),
			"MSFT":  decimal.NewFromFloat(380.00),
			"TSLA":  decimal.NewFromFloat(250.00),
			"AMZN":  decimal.NewFromFloat(180.00),
		},
		names: map[string]string{
			"AAPL":  "Apple Inc.",
			"GOOGL": "Alphabet Inc.",
			"MSFT":  "Microsoft Corporation",
			"TSLA":  "Tesla, Inc.",
			"AMZN":  "Amazon.com, Inc.",
		},
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Sim) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(symbol)

	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.prices[symbol]
	if !ok {
		return Quote{}, ErrNotFound
	}
	return Quote{Symbol: symbol, Name: s.names[symbol], Price: price}, nil
}

// Advance moves one random symbol by -2% to +2% and reports the movement.
func (s *Sim) Advance() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := make([]string, 0, len(s.prices))
	for symbol := range s.prices {
		symbols = append(symbols, symbol)
	}
	symbol := symbols[s.rng.Intn(len(symbols))]

	changePercent := (s.rng.Float64() - 0.5) * 4
	factor := decimal.NewFromFloat(1 + changePercent/100)
	newPrice := s.prices[symbol].Mul(factor).Round(4)
	s.prices[symbol] = newPrice

	return Update{
		Symbol:    symbol,
		Price:     newPrice,
		Change:    changePercent,
		Timestamp: time.Now(),
	}
}
