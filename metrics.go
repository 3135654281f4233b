package campus

import (
	"strings"
	"time"
)

// Derived values are computed at read time; stored numbers are never
// required to be pre-clamped.

// ClampProgress bounds a percentage to [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// GradePointMap builds the lookup from grade letter to points. Keys are
// case-normalized to uppercase; the last entry wins on duplicates.
func GradePointMap(scale []GradeScaleEntry) map[string]float64 {
	points := make(map[string]float64, len(scale))
	for _, entry := range scale {
		points[strings.ToUpper(entry.Grade)] = entry.Points
	}
	return points
}

// SemesterGPA computes the credit-weighted GPA for one semester. A course
// grade missing from the scale contributes zero points instead of failing.
func SemesterGPA(sem Semester, scale []GradeScaleEntry) (gpa, credits float64) {
	points := GradePointMap(scale)
	var weighted float64
	for _, course := range sem.Courses {
		credits += course.Credits
		weighted += points[strings.ToUpper(course.Grade)] * course.Credits
	}
	if credits == 0 {
		return 0, 0
	}
	return weighted / credits, credits
}

// CGPA aggregates semester GPAs weighted by semester credits.
func CGPA(semesters []Semester, scale []GradeScaleEntry) float64 {
	var weighted, credits float64
	for _, sem := range semesters {
		gpa, semCredits := SemesterGPA(sem, scale)
		weighted += gpa * semCredits
		credits += semCredits
	}
	if credits == 0 {
		return 0
	}
	return weighted / credits
}

// PredictCGPA projects the CGPA after futureCredits more credits at
// futureGPA, given the current standing.
func PredictCGPA(current, currentCredits, futureGPA, futureCredits float64) float64 {
	total := currentCredits + futureCredits
	if total == 0 {
		return 0
	}
	return (current*currentCredits + futureGPA*futureCredits) / total
}

// ExamReadiness returns prepared/total as a percentage clamped to [0, 100].
func ExamReadiness(e Exam) int {
	if e.TotalTopics <= 0 {
		return 0
	}
	return ClampProgress(e.PreparedTopics * 100 / e.TotalTopics)
}

// FocusMinutesOn reports accumulated focus minutes for an ISO date.
func FocusMinutesOn(f FocusState, date string) int {
	return f.DailyMinutes[date]
}

// TodayFocusMinutes reports accumulated focus minutes for now's date.
func TodayFocusMinutes(f FocusState, now time.Time) int {
	return FocusMinutesOn(f, ISODate(now))
}

// PlacementFunnel counts applications per pipeline stage.
func PlacementFunnel(p PlacementState) map[ApplicationStage]int {
	funnel := make(map[ApplicationStage]int, 6)
	for _, app := range p.Applications {
		funnel[app.Stage]++
	}
	return funnel
}

// CodingSolvedTotal sums solved counts across platforms.
func CodingSolvedTotal(c CodingState) int {
	var total int
	for _, platform := range c.Platforms {
		total += platform.Solved
	}
	return total
}

// DaysUntil counts whole days from now until an ISO date, rounding up.
// Past dates yield negative values.
func DaysUntil(isoDate string, now time.Time) int {
	target, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return 0
	}
	diff := target.Sub(now)
	days := int(diff.Hours() / 24)
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
