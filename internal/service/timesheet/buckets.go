package timesheet

import (
	"fmt"
	"time"
)

const (
	bucketMinutes = 30
	// BucketsPerDay is the number of half-hour buckets in one day.
	BucketsPerDay = 48
)

// Bucket is one fixed half-hour interval of a day. Start is inclusive, End
// exclusive; the last bucket ends at exclusive midnight of the next day.
type Bucket struct {
	Index int
	Start time.Duration // offset from midnight
	End   time.Duration
}

// Label formats the bucket as "HH:mm - HH:mm". The 24:00 upper bound of the
// final bucket renders as "00:00", wrapping like a wall clock.
func (b Bucket) Label() string {
	return formatOffset(b.Start) + " - " + formatOffset(b.End)
}

func formatOffset(d time.Duration) string {
	total := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

// DayBuckets returns the 48 half-hour buckets covering 00:00-24:00, ordered
// by start time, zero-indexed.
func DayBuckets() []Bucket {
	buckets := make([]Bucket, 0, BucketsPerDay)
	for i := 0; i < BucketsPerDay; i++ {
		start := time.Duration(i) * bucketMinutes * time.Minute
		buckets = append(buckets, Bucket{
			Index: i,
			Start: start,
			End:   start + bucketMinutes*time.Minute,
		})
	}
	return buckets
}

// BucketIndexOf returns the index of the bucket containing the wall-clock
// time of t, using half-open [start, end) membership.
func BucketIndexOf(t time.Time) int {
	return t.Hour()*2 + t.Minute()/bucketMinutes
}
