// Package dashboard computes the read-side aggregates the home screen
// renders, and evaluates configurable alert rules against the state.
package dashboard

import (
	"time"

	campus "github.com/goliatone/go-campus"
)

// Summary is the day-at-a-glance aggregate derived from the state. All
// values are computed at read time.
type Summary struct {
	TodayFocusMinutes int
	FocusStreak       int
	CGPA              float64
	DueSoonTasks      []campus.StudyTask
	AtRiskExams       []campus.Exam
	Funnel            map[campus.ApplicationStage]int
	SolvedTotal       int
	GoalsDoneToday    int
}

// Thresholds the summary uses for "due soon" and "at risk".
const (
	dueSoonDays      = 3
	atRiskDays       = 7
	atRiskReadiness  = 50
	atRiskMinimumGap = 0
)

// BuildSummary derives the aggregate from a state snapshot.
func BuildSummary(state campus.DomainState, now time.Time) Summary {
	summary := Summary{
		TodayFocusMinutes: campus.TodayFocusMinutes(state.Focus, now),
		FocusStreak:       state.Focus.Streak,
		CGPA:              campus.CGPA(state.Semesters, state.GradeScale),
		Funnel:            campus.PlacementFunnel(state.Placement),
		SolvedTotal:       campus.CodingSolvedTotal(state.Coding),
	}

	for _, task := range state.Tasks {
		if task.Status == campus.TaskStatusDone {
			continue
		}
		if days := campus.DaysUntil(task.DueDate, now); days <= dueSoonDays {
			summary.DueSoonTasks = append(summary.DueSoonTasks, task)
		}
	}

	for _, exam := range state.Exams {
		days := campus.DaysUntil(exam.Date, now)
		if days < atRiskMinimumGap {
			continue
		}
		if days <= atRiskDays && campus.ExamReadiness(exam) < atRiskReadiness {
			summary.AtRiskExams = append(summary.AtRiskExams, exam)
		}
	}

	for _, goal := range state.Goals {
		if goal.DoneToday {
			summary.GoalsDoneToday++
		}
	}
	return summary
}
