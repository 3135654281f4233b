// Package campus defines the domain state of a local-first student
// dashboard: tasks, focus sessions, exams, grades, placement pipeline,
// coding practice, company kits, resume, resources, goals and settings.
//
// The whole aggregate lives in memory (see pkg/store), is persisted as one
// JSON document, and round-trips through the versioned backup format in
// pkg/backup. JSON field names match the historical wire format so legacy
// dumps keep restoring.
package campus

// Priority ranks a study task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskStatus tracks a study task through its lifecycle.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// FocusMode distinguishes focus blocks from breaks.
type FocusMode string

const (
	FocusModeFocus FocusMode = "focus"
	FocusModeBreak FocusMode = "break"
)

// AmbientMode selects the ambient sound played during a focus session.
type AmbientMode string

const (
	AmbientNone AmbientMode = "none"
	AmbientRain AmbientMode = "rain"
	AmbientDeep AmbientMode = "deep"
	AmbientCafe AmbientMode = "cafe"
)

// ApplicationStage tracks a placement application through the pipeline.
type ApplicationStage string

const (
	StageApplied     ApplicationStage = "applied"
	StageOA          ApplicationStage = "oa"
	StageShortlisted ApplicationStage = "shortlisted"
	StageInterview   ApplicationStage = "interview"
	StageOffer       ApplicationStage = "offer"
	StageRejected    ApplicationStage = "rejected"
)

// ThemeMode selects the UI theme.
type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// GoalType separates one-shot goals from recurring habits.
type GoalType string

const (
	GoalTypeGoal  GoalType = "goal"
	GoalTypeHabit GoalType = "habit"
)

// ResumeTemplate names the resume layout in use.
type ResumeTemplate string

const (
	TemplateClassic   ResumeTemplate = "classic"
	TemplateMinimal   ResumeTemplate = "minimal"
	TemplateExecutive ResumeTemplate = "executive"
)

// StudyTask is one planner entry. Dates are ISO "2006-01-02" strings.
type StudyTask struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Subject  string     `json:"subject"`
	DueDate  string     `json:"dueDate"`
	Priority Priority   `json:"priority"`
	Status   TaskStatus `json:"status"`
	Progress int        `json:"progress"`
}

// FocusSession is one finished focus or break block.
type FocusSession struct {
	ID        string      `json:"id"`
	StartedAt string      `json:"startedAt"`
	Minutes   int         `json:"minutes"`
	Mode      FocusMode   `json:"mode"`
	Ambient   AmbientMode `json:"ambient"`
}

// FocusState groups the focus timer's persisted data. DailyMinutes maps an
// ISO date to the accumulated focus minutes for that day.
type FocusState struct {
	Sessions     []FocusSession `json:"sessions"`
	DailyMinutes map[string]int `json:"dailyMinutes"`
	Streak       int            `json:"streak"`
	AmbientMode  AmbientMode    `json:"ambientMode"`
}

// Exam is one upcoming exam with its preparation schedule.
type Exam struct {
	ID             string   `json:"id"`
	Subject        string   `json:"subject"`
	Date           string   `json:"date"`
	PreparedTopics int      `json:"preparedTopics"`
	TotalTopics    int      `json:"totalTopics"`
	TargetScore    int      `json:"targetScore"`
	Schedule       []string `json:"schedule"`
}

// Course is one graded course inside a semester. Grade is a key into the
// user-editable grade scale; a dangling key counts as zero points.
type Course struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
}

// Semester groups courses for GPA computation.
type Semester struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Courses []Course `json:"courses"`
}

// GradeScaleEntry maps one grade letter to grade points.
type GradeScaleEntry struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// PlacementChecklistItem is one preparation checklist entry.
type PlacementChecklistItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// PlacementApplication is one job application and its pipeline stage.
type PlacementApplication struct {
	ID        string           `json:"id"`
	Company   string           `json:"company"`
	Role      string           `json:"role"`
	Stage     ApplicationStage `json:"stage"`
	AppliedOn string           `json:"appliedOn"`
	NextStep  string           `json:"nextStep,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// OfferRecord is a received offer. CTCLpa is the package in lakhs per annum.
type OfferRecord struct {
	ID      string  `json:"id"`
	Company string  `json:"company"`
	CTCLpa  float64 `json:"ctcLpa"`
	Date    string  `json:"date"`
}

// RejectionRecord notes where and why an application ended.
type RejectionRecord struct {
	ID      string `json:"id"`
	Company string `json:"company"`
	Stage   string `json:"stage"`
	Date    string `json:"date"`
	Reason  string `json:"reason,omitempty"`
}

// ResumeVersion is one tracked revision of the resume.
type ResumeVersion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RoleTarget string `json:"roleTarget"`
	Score      int    `json:"score"`
	UpdatedAt  string `json:"updatedAt"`
}

// PlacementState groups everything placement related.
type PlacementState struct {
	Checklist      []PlacementChecklistItem `json:"checklist"`
	Applications   []PlacementApplication   `json:"applications"`
	Offers         []OfferRecord            `json:"offers"`
	Rejections     []RejectionRecord        `json:"rejections"`
	ResumeVersions []ResumeVersion          `json:"resumeVersions"`
}

// CodingPlatformProfile holds per-platform practice counters.
type CodingPlatformProfile struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Username string `json:"username"`
	Solved   int    `json:"solved"`
	Contests int    `json:"contests"`
	Rating   int    `json:"rating"`
	Easy     int    `json:"easy"`
	Medium   int    `json:"medium"`
	Hard     int    `json:"hard"`
}

// DailyCodingActivity is one day inside the rolling activity window.
type DailyCodingActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CodingTopicProgress tracks solved-versus-target per topic.
type CodingTopicProgress struct {
	Topic  string `json:"topic"`
	Solved int    `json:"solved"`
	Target int    `json:"target"`
}

// CodingState groups the coding practice tracker.
type CodingState struct {
	Platforms     []CodingPlatformProfile `json:"platforms"`
	DailyActivity []DailyCodingActivity   `json:"dailyActivity"`
	Topics        []CodingTopicProgress   `json:"topics"`
}

// CompanyKitTopic is one preparation item inside a company kit.
type CompanyKitTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// CompanyKit bundles a company-specific preparation roadmap.
type CompanyKit struct {
	ID      string            `json:"id"`
	Company string            `json:"company"`
	Roadmap []string          `json:"roadmap"`
	Topics  []CompanyKitTopic `json:"topics"`
}

// ResumeData holds the resume builder's free-text sections.
type ResumeData struct {
	Template   ResumeTemplate `json:"template"`
	FullName   string         `json:"fullName"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Location   string         `json:"location"`
	Headline   string         `json:"headline"`
	Summary    string         `json:"summary"`
	Education  string         `json:"education"`
	Experience string         `json:"experience"`
	Projects   string         `json:"projects"`
	Skills     string         `json:"skills"`
}

// ResourceItem is one bookmarked study resource.
type ResourceItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Favorite bool   `json:"favorite"`
}

// GoalHabit is one goal or daily habit.
type GoalHabit struct {
	ID        string   `json:"id"`
	Type      GoalType `json:"type"`
	Title     string   `json:"title"`
	Target    int      `json:"target"`
	Progress  int      `json:"progress"`
	Streak    int      `json:"streak"`
	DoneToday bool     `json:"doneToday"`
}

// AppSettings holds user preferences.
type AppSettings struct {
	Theme        ThemeMode `json:"theme"`
	FocusMinutes int       `json:"focusMinutes"`
	BreakMinutes int       `json:"breakMinutes"`
}

// DomainState is the root aggregate: every piece of tracked student data.
// After hydration or restore every field is populated (see Merge), so
// consumers never need to check for missing sections.
type DomainState struct {
	Tasks       []StudyTask       `json:"tasks"`
	Focus       FocusState        `json:"focus"`
	Exams       []Exam            `json:"exams"`
	Semesters   []Semester        `json:"semesters"`
	GradeScale  []GradeScaleEntry `json:"gradeScale"`
	Placement   PlacementState    `json:"placement"`
	Coding      CodingState       `json:"coding"`
	CompanyKits []CompanyKit      `json:"companyKits"`
	Resume      ResumeData        `json:"resume"`
	Resources   []ResourceItem    `json:"resources"`
	Goals       []GoalHabit       `json:"goals"`
	Settings    AppSettings       `json:"settings"`
}

// Transform produces the next DomainState from the current one. Transforms
// receive an isolated clone and may mutate it in place.
type Transform func(DomainState) DomainState
