package submission

import "sort"

// KPIStats is the dashboard's aggregate view of the visible submissions.
type KPIStats struct {
	Total      int            `json:"total"`
	ByCity     []CountEntry   `json:"by_city"`
	ByJobTitle []CountEntry   `json:"by_job_title"`
	ByDay      []CountEntry   `json:"by_day"`
	Storage    map[string]int `json:"storage"`
}

// CountEntry is one labeled bucket of a KPI breakdown.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Aggregate computes KPIs over a set of submissions. City and job title
// buckets are ordered by descending count; day buckets chronologically,
// keyed by the UTC calendar day.
func Aggregate(subs []Submission) *KPIStats {
	stats := &KPIStats{
		Total:   len(subs),
		Storage: make(map[string]int),
	}

	byCity := make(map[string]int)
	byJobTitle := make(map[string]int)
	byDay := make(map[string]int)

	for _, sub := range subs {
		byCity[sub.City]++
		byJobTitle[sub.JobTitle]++
		byDay[sub.CreatedAt.UTC().Format("2006-01-02")]++
		stats.Storage[sub.StorageKind]++
	}

	stats.ByCity = rankDescending(byCity)
	stats.ByJobTitle = rankDescending(byJobTitle)
	stats.ByDay = sortChronological(byDay)

	return stats
}

func rankDescending(counts map[string]int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func sortChronological(counts map[string]int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for day, count := range counts {
		entries = append(entries, CountEntry{Label: day, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}
