package market

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// Sort keys accepted by Rank.
const (
	SortCapRate       = "capRate"
	SortAppreciation  = "appreciation"
	SortRentGrowth    = "rentGrowth"
	SortAffordability = "affordability"
	SortScore         = "score"
)

// NationalAverageName labels the national average pseudo-market.
const NationalAverageName = "National Average"

// ErrUnknownSortKey is returned by Rank for an unsupported sort key.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKeys lists the keys accepted by Rank.
func SortKeys() []string {
	return []string{SortCapRate, SortAppreciation, SortRentGrowth, SortAffordability, SortScore}
}

// Ranked is a region with its position and score.
type Ranked struct {
	Rank int `json:"rank"`
	Region
	Score int `json:"score"`
}

// Rank orders every region by the given key. Affordability sorts by median
// price ascending; every other key sorts descending. Ties are broken by
// name. An empty key sorts by cap rate.
func (t *Table) Rank(key string) ([]Ranked, error) {
	less, err := lessFor(key)
	if err != nil {
		return nil, err
	}

	rows := make([]Ranked, len(t.fixture.Regions))
	for i, r := range t.fixture.Regions {
		rows[i] = Ranked{Region: r, Score: Score(r.Metrics)}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if before, decided := less(rows[i], rows[j]); decided {
			return before
		}
		return rows[i].Name < rows[j].Name
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

type rankLess func(a, b Ranked) (before, decided bool)

func descending(value func(Ranked) float64) rankLess {
	return func(a, b Ranked) (bool, bool) {
		va, vb := value(a), value(b)
		return va > vb, va != vb
	}
}

func lessFor(key string) (rankLess, error) {
	switch strings.TrimSpace(key) {
	case "", SortCapRate:
		return descending(func(r Ranked) float64 { return r.CapRate }), nil
	case SortAppreciation:
		return descending(func(r Ranked) float64 { return r.Appreciation }), nil
	case SortRentGrowth:
		return descending(func(r Ranked) float64 { return r.RentGrowth }), nil
	case SortScore:
		return descending(func(r Ranked) float64 { return float64(r.Score) }), nil
	case SortAffordability:
		return func(a, b Ranked) (bool, bool) {
			return a.MedianPrice < b.MedianPrice, a.MedianPrice != b.MedianPrice
		}, nil
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownSortKey, key, strings.Join(SortKeys(), ", "))
}

// NationalAverages is the arithmetic mean of every region's metrics.
func (t *Table) NationalAverages() Metrics {
	n := len(t.fixture.Regions)
	columns := make([][]float64, 8)
	for i := range columns {
		columns[i] = make([]float64, 0, n)
	}
	for _, r := range t.fixture.Regions {
		m := r.Metrics
		for i, v := range []float64{m.MedianPrice, m.MedianRent, m.PropertyTax, m.Insurance,
			m.Appreciation, m.RentGrowth, m.Vacancy, m.CapRate} {
			columns[i] = append(columns[i], v)
		}
	}
	return Metrics{
		MedianPrice:  mathutil.Mean(columns[0]),
		MedianRent:   mathutil.Mean(columns[1]),
		PropertyTax:  mathutil.Mean(columns[2]),
		Insurance:    mathutil.Mean(columns[3]),
		Appreciation: mathutil.Mean(columns[4]),
		RentGrowth:   mathutil.Mean(columns[5]),
		Vacancy:      mathutil.Mean(columns[6]),
		CapRate:      mathutil.Mean(columns[7]),
	}
}
