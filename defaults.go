package campus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID mints an opaque entity id. IDs are generated once at creation and
// never reused.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// ISODate formats t as the "2006-01-02" date strings used across the state.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// AddDays returns the ISO date days away from base. Negative values go back.
func AddDays(base time.Time, days int) string {
	return ISODate(base.AddDate(0, 0, days))
}

// DefaultState produces the seed DomainState used on first run and as the
// base every merge completes against. It is a pure function of now: calling
// it twice yields structurally equal states, differing only in the freshly
// minted ids.
func DefaultState(now time.Time) DomainState {
	activity := make([]DailyCodingActivity, 30)
	for i := range activity {
		activity[i] = DailyCodingActivity{
			Date:  AddDays(now, -(29 - i)),
			Count: (i*3 + 1) % 6,
		}
	}

	return DomainState{
		Tasks: []StudyTask{
			{ID: NewID("task"), Title: "Revise Graph Algorithms", Subject: "DSA", DueDate: AddDays(now, 2), Priority: PriorityHigh, Status: TaskStatusInProgress, Progress: 60},
			{ID: NewID("task"), Title: "Prepare DBMS short notes", Subject: "DBMS", DueDate: AddDays(now, 4), Priority: PriorityMedium, Status: TaskStatusTodo, Progress: 10},
			{ID: NewID("task"), Title: "Complete OS lab assignment", Subject: "Operating Systems", DueDate: AddDays(now, 1), Priority: PriorityHigh, Status: TaskStatusTodo, Progress: 0},
		},
		Focus: FocusState{
			Sessions: []FocusSession{
				{ID: NewID("focus"), StartedAt: now.Add(-2 * time.Hour).Format(time.RFC3339), Minutes: 50, Mode: FocusModeFocus, Ambient: AmbientDeep},
				{ID: NewID("focus"), StartedAt: now.Add(-time.Hour).Format(time.RFC3339), Minutes: 25, Mode: FocusModeFocus, Ambient: AmbientRain},
			},
			DailyMinutes: map[string]int{ISODate(now): 75},
			Streak:       5,
			AmbientMode:  AmbientDeep,
		},
		Exams: []Exam{
			{ID: NewID("exam"), Subject: "Data Structures", Date: AddDays(now, 10), PreparedTopics: 5, TotalTopics: 10, TargetScore: 85, Schedule: []string{"Array + Strings", "Trees + Graphs", "DP revision"}},
			{ID: NewID("exam"), Subject: "Computer Networks", Date: AddDays(now, 16), PreparedTopics: 3, TotalTopics: 8, TargetScore: 80, Schedule: []string{"OSI + TCP", "Routing", "Protocols + MCQ sprint"}},
		},
		Semesters: []Semester{
			{
				ID:   NewID("sem"),
				Name: "Semester 5",
				Courses: []Course{
					{ID: NewID("course"), Name: "DBMS", Credits: 4, Grade: "A"},
					{ID: NewID("course"), Name: "OS", Credits: 4, Grade: "A-"},
					{ID: NewID("course"), Name: "AI", Credits: 3, Grade: "B+"},
				},
			},
		},
		GradeScale: []GradeScaleEntry{
			{Grade: "O", Points: 10},
			{Grade: "A+", Points: 9},
			{Grade: "A", Points: 8.5},
			{Grade: "B+", Points: 8},
			{Grade: "B", Points: 7},
			{Grade: "C", Points: 6},
			{Grade: "D", Points: 5},
			{Grade: "F", Points: 0},
		},
		Placement: PlacementState{
			Checklist: []PlacementChecklistItem{
				{ID: NewID("pc"), Title: "Resume v3 ready", Done: true},
				{ID: NewID("pc"), Title: "Aptitude mock test", Done: false},
				{ID: NewID("pc"), Title: "System design basics", Done: false},
				{ID: NewID("pc"), Title: "Top 100 DSA problems", Done: true},
			},
			Applications: []PlacementApplication{
				{ID: NewID("app"), Company: "Google", Role: "SWE Intern", Stage: StageOA, AppliedOn: AddDays(now, -4), NextStep: AddDays(now, 3)},
				{ID: NewID("app"), Company: "Atlassian", Role: "Software Engineer", Stage: StageInterview, AppliedOn: AddDays(now, -14), NextStep: AddDays(now, 2)},
			},
			Offers: []OfferRecord{
				{ID: NewID("offer"), Company: "StartupX", CTCLpa: 14, Date: AddDays(now, -30)},
			},
			Rejections: []RejectionRecord{
				{ID: NewID("rej"), Company: "Amazon", Stage: "Interview 2", Date: AddDays(now, -40)},
			},
			ResumeVersions: []ResumeVersion{
				{ID: NewID("rv"), Name: "General SWE v3", RoleTarget: "SDE", Score: 82, UpdatedAt: AddDays(now, -3)},
				{ID: NewID("rv"), Name: "Data Analyst v1", RoleTarget: "Analytics", Score: 74, UpdatedAt: AddDays(now, -7)},
			},
		},
		Coding: CodingState{
			Platforms: []CodingPlatformProfile{
				{ID: NewID("cp"), Platform: "LeetCode", Username: "you", Solved: 320, Contests: 21, Rating: 1720, Easy: 140, Medium: 150, Hard: 30},
				{ID: NewID("cp"), Platform: "Codeforces", Username: "you_cf", Solved: 190, Contests: 14, Rating: 1460, Easy: 90, Medium: 78, Hard: 22},
			},
			DailyActivity: activity,
			Topics: []CodingTopicProgress{
				{Topic: "Arrays", Solved: 52, Target: 80},
				{Topic: "Graphs", Solved: 21, Target: 40},
				{Topic: "Dynamic Programming", Solved: 18, Target: 35},
				{Topic: "Trees", Solved: 34, Target: 45},
			},
		},
		CompanyKits: []CompanyKit{
			{
				ID:      NewID("kit"),
				Company: "Google",
				Roadmap: []string{"Master DSA rounds", "Revise CS fundamentals", "Solve 5 mock interviews"},
				Topics: []CompanyKitTopic{
					{ID: NewID("topic"), Title: "Graphs + DP", Done: false},
					{ID: NewID("topic"), Title: "System design basics", Done: false},
					{ID: NewID("topic"), Title: "Behavioral stories", Done: true},
				},
			},
			{
				ID:      NewID("kit"),
				Company: "Microsoft",
				Roadmap: []string{"OOP + OS deep revision", "LeetCode company tagged set", "Mock interview rounds"},
				Topics: []CompanyKitTopic{
					{ID: NewID("topic"), Title: "Arrays + Strings", Done: true},
					{ID: NewID("topic"), Title: "Concurrency", Done: false},
					{ID: NewID("topic"), Title: "Resume tailoring", Done: true},
				},
			},
		},
		Resume: ResumeData{
			Template:   TemplateClassic,
			FullName:   "Your Name",
			Email:      "you@email.com",
			Phone:      "+91 90000 00000",
			Location:   "Bengaluru, India",
			Headline:   "Final-year CSE Student | Aspiring Software Engineer",
			Summary:    "Problem-solving focused student with strong DSA practice and real-world internship experience.",
			Education:  "B.Tech in Computer Science, XYZ University (2023 - 2027), CGPA: 8.7/10",
			Experience: "Software Intern, Acme Labs (May 2025 - Jul 2025) - Built dashboard modules and improved load time by 30%.",
			Projects:   "CampusOS super-app, Real-time attendance tracker, Placement analytics dashboard.",
			Skills:     "TypeScript, React, Next.js, Node.js, SQL, DSA, System Design",
		},
		Resources: []ResourceItem{
			{ID: NewID("res"), Title: "NeetCode 150", URL: "https://neetcode.io", Category: "DSA", Favorite: true},
			{ID: NewID("res"), Title: "DBMS Notes", URL: "https://www.geeksforgeeks.org/dbms/", Category: "Academics", Favorite: false},
		},
		Goals: []GoalHabit{
			{ID: NewID("goal"), Type: GoalTypeGoal, Title: "Solve 300 DSA problems", Target: 300, Progress: 210, Streak: 6, DoneToday: true},
			{ID: NewID("goal"), Type: GoalTypeHabit, Title: "2 Pomodoros daily", Target: 2, Progress: 1, Streak: 11, DoneToday: false},
		},
		Settings: AppSettings{
			Theme:        ThemeDark,
			FocusMinutes: 25,
			BreakMinutes: 5,
		},
	}
}
