package listing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

func testJob(mutate ...func(*db.Job)) db.Job {
	j := db.Job{
		ID:          uuid.New(),
		Title:       "พนักงานเสิร์ฟ",
		CompanyName: "ร้านกาแฟดอยคำ",
		Location:    "ตำบลตลาด อำเภอเมืองมหาสารคาม",
		IsActive:    true,
		IsApproved:  true,
		CreatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&j)
	}
	return j
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestVisibleExcludesClosedJobs(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	open := testJob()
	inactive := testJob(func(j *db.Job) { j.IsActive = false })
	unapproved := testJob(func(j *db.Job) { j.IsApproved = false })
	expired := testJob(func(j *db.Job) {
		j.ApplicationDeadline = timePtr(now.Add(-time.Hour))
	})
	full := testJob(func(j *db.Job) {
		j.MaxApplicants = intPtr(3)
		j.CurrentApplicants = 3
	})
	almostFull := testJob(func(j *db.Job) {
		j.MaxApplicants = intPtr(3)
		j.CurrentApplicants = 2
	})

	got := Visible([]db.Job{open, inactive, unapproved, expired, full, almostFull}, Criteria{}, now)

	require.Len(t, got, 2)
	assert.Equal(t, open.ID, got[0].ID)
	assert.Equal(t, almostFull.ID, got[1].ID)
}

func TestVisibleDeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	j := testJob(func(j *db.Job) { j.ApplicationDeadline = &deadline })

	// Open at the deadline itself, closed one instant after.
	assert.Len(t, Visible([]db.Job{j}, Criteria{}, deadline), 1)
	assert.Empty(t, Visible([]db.Job{j}, Criteria{}, deadline.Add(time.Nanosecond)))
}

func TestVisibleSearch(t *testing.T) {
	now := time.Now()
	jobs := []db.Job{
		testJob(func(j *db.Job) { j.Title = "Barista ประจำร้าน" }),
		testJob(func(j *db.Job) { j.CompanyName = "Sarakham Coffee House" }),
		testJob(func(j *db.Job) { j.Location = "ใกล้มหาวิทยาลัยมหาสารคาม" }),
		testJob(func(j *db.Job) { j.Title = "พนักงานคลังสินค้า" }),
	}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"empty term matches all", "", 4},
		{"whitespace only matches all", "   ", 4},
		{"title match case insensitive", "barista", 1},
		{"company name match", "coffee", 1},
		{"location match", "มหาวิทยาลัย", 1},
		{"no match", "วิศวกร", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(jobs, Criteria{Search: tt.search}, now)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestVisibleDistrict(t *testing.T) {
	now := time.Now()
	muang := testJob(func(j *db.Job) { j.Location = "อำเภอเมืองมหาสารคาม" })
	borabue := testJob(func(j *db.Job) { j.Location = "ตลาดบรบือ อำเภอบรบือ" })
	jobs := []db.Job{muang, borabue}

	assert.Len(t, Visible(jobs, Criteria{District: ""}, now), 2)
	assert.Len(t, Visible(jobs, Criteria{District: AllDistricts}, now), 2)

	got := Visible(jobs, Criteria{District: "บรบือ"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, borabue.ID, got[0].ID)
}

func TestVisibleSortOrders(t *testing.T) {
	now := time.Now()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	early := testJob(func(j *db.Job) {
		j.Title = "early"
		j.CreatedAt = base
		j.SalaryPerHour = floatPtr(45)
		j.ApplicationDeadline = timePtr(now.Add(72 * time.Hour))
	})
	middle := testJob(func(j *db.Job) {
		j.Title = "middle"
		j.CreatedAt = base.Add(24 * time.Hour)
		j.SalaryPerHour = nil // sorts as zero
	})
	late := testJob(func(j *db.Job) {
		j.Title = "late"
		j.CreatedAt = base.Add(48 * time.Hour)
		j.SalaryPerHour = floatPtr(60)
		j.ApplicationDeadline = timePtr(now.Add(24 * time.Hour))
	})
	jobs := []db.Job{middle, late, early}

	titles := func(got []db.Job) []string {
		out := make([]string, len(got))
		for i, j := range got {
			out[i] = j.Title
		}
		return out
	}

	tests := []struct {
		sort Sort
		want []string
	}{
		{SortNewest, []string{"late", "middle", "early"}},
		{SortOldest, []string{"early", "middle", "late"}},
		{SortSalaryHigh, []string{"late", "early", "middle"}},
		{SortSalaryLow, []string{"middle", "early", "late"}},
		// Jobs with no deadline sort after every dated one.
		{SortDeadlineSoonest, []string{"late", "early", "middle"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := Visible(jobs, Criteria{Sort: tt.sort}, now)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestVisibleUnknownSortFallsBackToNewest(t *testing.T) {
	now := time.Now()
	old := testJob(func(j *db.Job) { j.CreatedAt = now.Add(-48 * time.Hour) })
	fresh := testJob(func(j *db.Job) { j.CreatedAt = now.Add(-time.Hour) })

	got := Visible([]db.Job{old, fresh}, Criteria{Sort: Sort("bogus")}, now)
	require.Len(t, got, 2)
	assert.Equal(t, fresh.ID, got[0].ID)
}

func TestVisibleIsIdempotent(t *testing.T) {
	now := time.Now()
	jobs := []db.Job{
		testJob(func(j *db.Job) { j.Title = "บาริสต้า"; j.SalaryPerHour = floatPtr(45) }),
		testJob(func(j *db.Job) { j.Title = "พนักงานเสิร์ฟ"; j.SalaryPerHour = floatPtr(50) }),
		testJob(func(j *db.Job) { j.IsActive = false }),
	}
	criteria := Criteria{Search: "พนักงาน", Sort: SortSalaryHigh}

	once := Visible(jobs, criteria, now)
	twice := Visible(once, criteria, now)

	assert.Equal(t, once, twice)
}

func TestSalaryOrdersAreReverses(t *testing.T) {
	now := time.Now()
	jobs := []db.Job{
		testJob(func(j *db.Job) { j.SalaryPerHour = floatPtr(40) }),
		testJob(func(j *db.Job) { j.SalaryPerHour = floatPtr(60) }),
		testJob(func(j *db.Job) { j.SalaryPerHour = floatPtr(50) }),
	}

	high := Visible(jobs, Criteria{Sort: SortSalaryHigh}, now)
	low := Visible(jobs, Criteria{Sort: SortSalaryLow}, now)

	require.Len(t, high, 3)
	for i := range high {
		assert.Equal(t, high[i].ID, low[len(low)-1-i].ID)
	}
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	jobs := []db.Job{
		testJob(func(j *db.Job) { j.Title = "a"; j.CreatedAt = now.Add(-time.Hour) }),
		testJob(func(j *db.Job) { j.Title = "b"; j.CreatedAt = now }),
	}

	_ = Visible(jobs, Criteria{Sort: SortNewest}, now)

	assert.Equal(t, "a", jobs[0].Title)
	assert.Equal(t, "b", jobs[1].Title)
}

func TestSortValid(t *testing.T) {
	assert.True(t, SortSalaryHigh.Valid())
	assert.True(t, SortDeadlineSoonest.Valid())
	assert.False(t, Sort("random").Valid())
	assert.False(t, Sort("").Valid())
}

func TestDistrictsCoverProvince(t *testing.T) {
	assert.Len(t, Districts, 13)
	assert.Contains(t, Districts, "เมืองมหาสารคาม")
	assert.NotContains(t, Districts, AllDistricts)
}
