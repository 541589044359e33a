package seeder

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/ghighi/quoteboard/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor  = 1000000
	confidenceDivisor   = 6
	probabilityDecimals = 1000000
	backdateDays        = 30
)

// Constants for probability distribution cases.
const (
	caseLongShot   = 0
	caseUnlikely   = 1
	caseCoinFlip   = 2
	caseLikely     = 3
	caseNearLock   = 4
	caseFullRange  = 5
)

// Demo roster and events. Names repeat across quotes so the board shows
// per-player series instead of a flat list.
var (
	demoPlayers = []string{"Alice", "Bob", "Chiara", "Dan", "Emma", "Farid"}

	demoEvents = []string{
		"Ben finishes the marathon under 4 hours",
		"It snows on New Year's Eve",
		"The office coffee machine survives the year",
		"Lena's sourdough starter makes it to summer",
		"Our team wins the pub quiz",
	}

	demoQuotes = []string{
		"no way",
		"I'd put money on it",
		"maybe, if the weather holds",
		"this one is a lock",
		"not in a million years",
		"could go either way",
		"",
	}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of values.
func pick(values []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(values))))
	return values[n.Int64()]
}

// generateQuotes creates the specified number of demo submissions.
func generateQuotes(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating demo quotes", logger.Int("count", config.Count))

	subs := make([]Submission, config.Count)
	for i := range subs {
		subs[i] = generateSingleQuote()
	}

	stats.QuotesGenerated = len(subs)
	logger.Get().Info(ctx, "generated quotes successfully", logger.Int("count", len(subs)))
	return subs, nil
}

// generateSingleQuote creates one submission with a varied probability
// and a date within the last month.
func generateSingleQuote() Submission {
	daysAgo, _ := rand.Int(rand.Reader, big.NewInt(backdateDays))
	date := time.Now().UTC().AddDate(0, 0, -int(daysAgo.Int64())).Format("2006-01-02")

	return Submission{
		Date:               date,
		Player:             pick(demoPlayers),
		Event:              pick(demoEvents),
		Quote:              pick(demoQuotes),
		ImpliedProbability: generateVariedProbability(),
	}
}

// generateVariedProbability creates a probability with a distribution
// that clusters around conversational confidence levels.
func generateVariedProbability() float64 {
	randNum, _ := rand.Int(rand.Reader, big.NewInt(confidenceDivisor))
	var p float64
	switch randNum.Int64() {
	case caseLongShot:
		// Long shots (0.00 - 0.10)
		p = getRandomFloat() * 0.1
	case caseUnlikely:
		// Unlikely (0.10 - 0.35)
		p = 0.1 + getRandomFloat()*0.25
	case caseCoinFlip:
		// Coin flips (0.40 - 0.60)
		p = 0.4 + getRandomFloat()*0.2
	case caseLikely:
		// Likely (0.60 - 0.85)
		p = 0.6 + getRandomFloat()*0.25
	case caseNearLock:
		// Near locks (0.90 - 1.00)
		p = 0.9 + getRandomFloat()*0.1
	case caseFullRange:
		p = getRandomFloat()
	default:
		p = getRandomFloat()
	}
	return math.Round(p*probabilityDecimals) / probabilityDecimals
}
