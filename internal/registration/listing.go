package registration

import (
	"strings"
	"time"
)

// PageSize is the fixed page length for dashboard listing.
const PageSize = 10

// AllDepartments disables the department constraint in Filter.
const AllDepartments = "all"

// Filter derives a view of records matching both predicates: a
// case-insensitive substring match against name, phone or email, and
// an exact department match ("all" or empty means no constraint).
func Filter(records []Record, search, department string) []Record {
	search = strings.ToLower(strings.TrimSpace(search))
	byDept := department != "" && department != AllDepartments

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.FullName), search) &&
			!strings.Contains(strings.ToLower(rec.MobileNumber), search) &&
			!strings.Contains(strings.ToLower(rec.Email), search) {
			continue
		}
		if byDept && rec.Department != department {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Paginate slices records into fixed pages of PageSize. The requested
// page is clamped to [1, pages] and never drops below 1; the clamped
// page and the page count are returned alongside the slice.
func Paginate(records []Record, page int) ([]Record, int, int) {
	pages := (len(records) + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], page, pages
}

// Stats summarises the full record set for the dashboard tiles.
type Stats struct {
	Total       int `json:"total"`
	Today       int `json:"today"`
	Departments int `json:"departments"`
}

// ComputeStats counts all records, those created on the local calendar
// day of now, and the distinct departments present.
func ComputeStats(records []Record, now time.Time) Stats {
	stats := Stats{Total: len(records)}
	seen := map[string]bool{}
	y, m, d := now.Date()
	for _, rec := range records {
		ry, rm, rd := rec.CreatedAt.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			stats.Today++
		}
		if !seen[rec.Department] {
			seen[rec.Department] = true
			stats.Departments++
		}
	}
	return stats
}
