package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"mosaic/domain/dataset"
)

// AirdropColumns is the header of generated datasets
var AirdropColumns = []string{"address", "score", "tx_count", "tier", "ens_name"}

var tiers = []string{"bronze", "silver", "gold"}

// AirdropGeneratorConfig configures the synthetic wallet generator
type AirdropGeneratorConfig struct {
	WalletCount  int     `json:"wallet_count"`
	NamedRate    float64 `json:"named_rate"`    // share of wallets with an ENS name
	RepeatRate   float64 `json:"repeat_rate"`   // share of rows reusing an earlier address
	MissingRate  float64 `json:"missing_rate"`  // share of blank score cells
	ScoreCeiling int     `json:"score_ceiling"` // scores fall in [0, ScoreCeiling]
	Seed         int64   `json:"seed"`
}

// DefaultAirdropConfig returns sensible defaults for airdrop data generation
func DefaultAirdropConfig() AirdropGeneratorConfig {
	return AirdropGeneratorConfig{
		WalletCount:  200,
		NamedRate:    0.35,
		RepeatRate:   0.1,
		MissingRate:  0.05,
		ScoreCeiling: 100,
		Seed:         42,
	}
}

// AirdropDataGenerator produces wallet rows shaped like an airdrop criteria sheet
type AirdropDataGenerator struct {
	config AirdropGeneratorConfig
	rng    *rand.Rand
}

// NewAirdropDataGenerator creates a generator; the same seed gives the same rows
func NewAirdropDataGenerator(config AirdropGeneratorConfig) *AirdropDataGenerator {
	if config.ScoreCeiling <= 0 {
		config.ScoreCeiling = 100
	}
	return &AirdropDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRows returns raw string rows in AirdropColumns order
func (g *AirdropDataGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.WalletCount)
	var addresses []string
	names := make(map[string]string)

	for i := 0; i < g.config.WalletCount; i++ {
		var address string
		if len(addresses) > 0 && g.rng.Float64() < g.config.RepeatRate {
			address = addresses[g.rng.Intn(len(addresses))]
		} else {
			address = fmt.Sprintf("0x%040x", g.rng.Uint64())
			addresses = append(addresses, address)
			if g.rng.Float64() < g.config.NamedRate {
				names[address] = fmt.Sprintf("wallet%d.eth", len(addresses))
			}
		}

		score := ""
		if g.rng.Float64() >= g.config.MissingRate {
			score = strconv.Itoa(g.rng.Intn(g.config.ScoreCeiling + 1))
		}
		txCount := int(math.Abs(g.rng.NormFloat64()*40 + 60))

		// repeated addresses only carry the name on some rows
		name := names[address]
		if name != "" && g.rng.Float64() < 0.3 {
			name = ""
		}

		rows = append(rows, []string{
			address,
			score,
			strconv.Itoa(txCount),
			tiers[g.rng.Intn(len(tiers))],
			name,
		})
	}
	return rows
}

// GenerateTable returns the generated rows as a dataset
func (g *AirdropDataGenerator) GenerateTable() (*dataset.Table, error) {
	return dataset.FromStrings(AirdropColumns, g.GenerateRows())
}
