package enrichment

import (
	"encoding/json"
	"fmt"
)

// Market is a profile flattened into market-intelligence records.
type Market struct {
	Trends        []Record
	Competitors   Record
	Opportunities []Record
}

// MarketRecords flattens a profile: news items become trends, the competitor
// analysis is kept whole and its opportunities become one record each.
func MarketRecords(p Profile) (Market, error) {
	m := Market{
		Trends:        make([]Record, 0, len(p.IndustryNews)),
		Competitors:   Record{},
		Opportunities: []Record{},
	}
	for _, item := range p.IndustryNews {
		rec, err := toRecord(item)
		if err != nil {
			return Market{}, fmt.Errorf("news item %q: %w", item.Title, err)
		}
		m.Trends = append(m.Trends, rec)
	}

	if p.CompetitorAnalysis != nil && p.CompetitorAnalysis.Error == "" {
		rec, err := toRecord(p.CompetitorAnalysis)
		if err != nil {
			return Market{}, fmt.Errorf("competitor analysis: %w", err)
		}
		m.Competitors = rec
		for _, o := range p.CompetitorAnalysis.Opportunities {
			m.Opportunities = append(m.Opportunities, Record{"opportunity": o})
		}
	}
	return m, nil
}

func toRecord(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	rec := Record{}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}
	return rec, nil
}
