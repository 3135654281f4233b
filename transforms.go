package campus

import "time"

// Named transforms cover the mutation vocabulary the dashboard pages apply
// through the store. Each receives an isolated clone and mutates in place.

// AddTask appends a planner task, minting an id when absent.
func AddTask(task StudyTask) Transform {
	return func(s DomainState) DomainState {
		if task.ID == "" {
			task.ID = NewID("task")
		}
		s.Tasks = append(s.Tasks, task)
		return s
	}
}

// UpdateTask applies fn to the task with the given id, if present.
func UpdateTask(id string, fn func(*StudyTask)) Transform {
	return func(s DomainState) DomainState {
		for i := range s.Tasks {
			if s.Tasks[i].ID == id {
				fn(&s.Tasks[i])
				break
			}
		}
		return s
	}
}

// DeleteTask removes the task with the given id.
func DeleteTask(id string) Transform {
	return func(s DomainState) DomainState {
		kept := s.Tasks[:0]
		for _, task := range s.Tasks {
			if task.ID != id {
				kept = append(kept, task)
			}
		}
		s.Tasks = kept
		return s
	}
}

// SetTaskStatus moves a task to status; finishing a task pins its progress
// to 100.
func SetTaskStatus(id string, status TaskStatus) Transform {
	return UpdateTask(id, func(t *StudyTask) {
		t.Status = status
		if status == TaskStatusDone {
			t.Progress = 100
		}
	})
}

// RecordFocusSession prepends a finished session. Focus blocks also
// accumulate the day's minutes and extend the streak; breaks only record
// the session.
func RecordFocusSession(startedAt time.Time, minutes int, mode FocusMode, ambient AmbientMode) Transform {
	return func(s DomainState) DomainState {
		session := FocusSession{
			ID:        NewID("focus"),
			StartedAt: startedAt.Format(time.RFC3339),
			Minutes:   minutes,
			Mode:      mode,
			Ambient:   ambient,
		}
		s.Focus.Sessions = append([]FocusSession{session}, s.Focus.Sessions...)
		s.Focus.AmbientMode = ambient
		if mode == FocusModeFocus {
			if s.Focus.DailyMinutes == nil {
				s.Focus.DailyMinutes = map[string]int{}
			}
			s.Focus.DailyMinutes[ISODate(startedAt)] += minutes
			s.Focus.Streak++
		}
		return s
	}
}

// ToggleChecklistItem flips one placement checklist entry.
func ToggleChecklistItem(id string) Transform {
	return func(s DomainState) DomainState {
		for i := range s.Placement.Checklist {
			if s.Placement.Checklist[i].ID == id {
				s.Placement.Checklist[i].Done = !s.Placement.Checklist[i].Done
				break
			}
		}
		return s
	}
}

// AddApplication appends a placement application, minting an id when absent.
func AddApplication(app PlacementApplication) Transform {
	return func(s DomainState) DomainState {
		if app.ID == "" {
			app.ID = NewID("app")
		}
		s.Placement.Applications = append(s.Placement.Applications, app)
		return s
	}
}

// SetApplicationStage advances an application through the pipeline.
func SetApplicationStage(id string, stage ApplicationStage) Transform {
	return func(s DomainState) DomainState {
		for i := range s.Placement.Applications {
			if s.Placement.Applications[i].ID == id {
				s.Placement.Applications[i].Stage = stage
				break
			}
		}
		return s
	}
}

// ToggleResourceFavorite flips a bookmark's favorite flag.
func ToggleResourceFavorite(id string) Transform {
	return func(s DomainState) DomainState {
		for i := range s.Resources {
			if s.Resources[i].ID == id {
				s.Resources[i].Favorite = !s.Resources[i].Favorite
				break
			}
		}
		return s
	}
}

// MarkGoalDoneToday completes a goal or habit for the day, bumping progress
// and streak once per toggle.
func MarkGoalDoneToday(id string) Transform {
	return func(s DomainState) DomainState {
		for i := range s.Goals {
			goal := &s.Goals[i]
			if goal.ID != id || goal.DoneToday {
				continue
			}
			goal.DoneToday = true
			goal.Streak++
			if goal.Progress < goal.Target {
				goal.Progress++
			}
			break
		}
		return s
	}
}

// SetTheme switches the UI theme.
func SetTheme(theme ThemeMode) Transform {
	return func(s DomainState) DomainState {
		s.Settings.Theme = theme
		return s
	}
}

// SetFocusDefaults updates the default focus and break durations.
func SetFocusDefaults(focusMinutes, breakMinutes int) Transform {
	return func(s DomainState) DomainState {
		s.Settings.FocusMinutes = focusMinutes
		s.Settings.BreakMinutes = breakMinutes
		return s
	}
}
