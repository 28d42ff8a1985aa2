package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Daily streak stipend and quiz bonus awarded by the gamification engine.
const (
	StreakDailyXP       = 25
	PerfectScoreBonusXP = 50
)
