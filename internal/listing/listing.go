// Package listing filters and orders job postings for the public board.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// AllDistricts is the sentinel district meaning no district filter.
const AllDistricts = "ทั้งหมด"

// Districts lists the 13 districts of Maha Sarakham province.
var Districts = []string{
	"เมืองมหาสารคาม",
	"แกดำ",
	"โกสุมพิสัย",
	"กันทรวิชัย",
	"เชียงยืน",
	"บรบือ",
	"นาเชือก",
	"พยัคฆภูมิพิสัย",
	"วาปีปทุม",
	"นาดูน",
	"ยางสีสุราช",
	"กุดรัง",
	"ชื่นชม",
}

// Sort names a board ordering.
type Sort string

const (
	SortNewest          Sort = "newest"
	SortOldest          Sort = "oldest"
	SortSalaryHigh      Sort = "salary_high"
	SortSalaryLow       Sort = "salary_low"
	SortDeadlineSoonest Sort = "deadline_soonest"
)

// Valid reports whether s is a known sort order.
func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortSalaryHigh, SortSalaryLow, SortDeadlineSoonest:
		return true
	}
	return false
}

// Criteria describes one board query.
type Criteria struct {
	Search   string
	District string
	Sort     Sort
}

// Visible returns the jobs a visitor should see for the given criteria at the
// given instant. The input slice is never mutated.
func Visible(jobs []db.Job, c Criteria, now time.Time) []db.Job {
	out := make([]db.Job, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsOpen(now) {
			continue
		}
		if !matchesSearch(&j, c.Search) {
			continue
		}
		if !matchesDistrict(&j, c.District) {
			continue
		}
		out = append(out, j)
	}

	sortJobs(out, c.Sort)
	return out
}

// matchesSearch does a case-insensitive substring match over the title,
// company name and location. An empty term matches everything.
func matchesSearch(j *db.Job, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.CompanyName), term) ||
		strings.Contains(strings.ToLower(j.Location), term)
}

// matchesDistrict matches the district name against the job location. The
// empty string and AllDistricts both disable the filter.
func matchesDistrict(j *db.Job, district string) bool {
	if district == "" || district == AllDistricts {
		return true
	}
	return strings.Contains(j.Location, district)
}

func sortJobs(jobs []db.Job, s Sort) {
	switch s {
	case SortOldest:
		sort.SliceStable(jobs, func(a, b int) bool {
			return jobs[a].CreatedAt.Before(jobs[b].CreatedAt)
		})
	case SortSalaryHigh:
		sort.SliceStable(jobs, func(a, b int) bool {
			return hourlyRate(&jobs[a]) > hourlyRate(&jobs[b])
		})
	case SortSalaryLow:
		sort.SliceStable(jobs, func(a, b int) bool {
			return hourlyRate(&jobs[a]) < hourlyRate(&jobs[b])
		})
	case SortDeadlineSoonest:
		sort.SliceStable(jobs, func(a, b int) bool {
			left, right := jobs[a].ApplicationDeadline, jobs[b].ApplicationDeadline
			switch {
			case left == nil:
				return false
			case right == nil:
				return true
			default:
				return left.Before(*right)
			}
		})
	default: // SortNewest
		sort.SliceStable(jobs, func(a, b int) bool {
			return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
		})
	}
}

// hourlyRate treats a missing rate as zero so such jobs sink to the bottom of
// salary_high and the top of salary_low.
func hourlyRate(j *db.Job) float64 {
	if j.SalaryPerHour == nil {
		return 0
	}
	return *j.SalaryPerHour
}
