package model

type Statistics struct {
	TotalTasks        int64            `json:"totalTasks"`
	ByStatus          map[string]int64 `json:"byStatus"`
	ByPriority        map[string]int64 `json:"byPriority"`
	OverdueTasksCount int64            `json:"overdueTasksCount"`
	TodayTasksCount   int64            `json:"todayTasksCount"`
	WeekTasksCount    int64            `json:"weekTasksCount"`
}
