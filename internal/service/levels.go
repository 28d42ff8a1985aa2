package service

// LevelTier is one step of the fixed XP level curve.
type LevelTier struct {
	Level      int
	XPRequired int
	Title      string
}

// XPLevels maps XP thresholds to levels and titles. Level 1 starts at 0 XP.
// The table is never reordered; levels past the last tier advance by
// extendedLevelStep XP each.
var XPLevels = []LevelTier{
	{Level: 1, XPRequired: 0, Title: "Beginner"},
	{Level: 2, XPRequired: 100, Title: "Learner"},
	{Level: 3, XPRequired: 250, Title: "Explorer"},
	{Level: 4, XPRequired: 500, Title: "Scholar"},
	{Level: 5, XPRequired: 800, Title: "Scientist"},
	{Level: 6, XPRequired: 1200, Title: "Researcher"},
	{Level: 7, XPRequired: 1700, Title: "Expert"},
	{Level: 8, XPRequired: 2300, Title: "Innovator"},
	{Level: 9, XPRequired: 3000, Title: "Pioneer"},
	{Level: 10, XPRequired: 3800, Title: "Master"},
}

const (
	extendedLevelBase = 4700
	extendedLevelStep = 1000
)

// LevelForXP returns the highest level whose threshold does not exceed xp.
// Monotonic step function; levels never decrease as xp grows.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := 1
	for _, tier := range XPLevels {
		if xp >= tier.XPRequired {
			level = tier.Level
		}
	}
	if xp >= extendedLevelBase {
		top := XPLevels[len(XPLevels)-1].Level
		if ext := top + (xp-extendedLevelBase)/extendedLevelStep; ext > level {
			level = ext
		}
	}
	return level
}

// LevelInfo describes where xp sits on the curve.
type LevelInfo struct {
	Level       int
	Title       string
	NextLevel   int
	NextLevelXP int
	Progress    int // 0-100, percent of the way to the next threshold
}

// LevelInfoForXP returns the current tier and progress toward the next. At
// the top of the defined table the next level equals the current one and
// progress is 100.
func LevelInfoForXP(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	level := LevelForXP(xp)
	top := XPLevels[len(XPLevels)-1]
	if level > top.Level {
		threshold := extendedLevelBase + (level-top.Level)*extendedLevelStep
		return LevelInfo{
			Level:       level,
			Title:       top.Title,
			NextLevel:   level + 1,
			NextLevelXP: threshold + extendedLevelStep,
			Progress:    clampPercent((xp - threshold) * 100 / extendedLevelStep),
		}
	}

	current := XPLevels[0]
	next := XPLevels[0]
	for i, tier := range XPLevels {
		if xp >= tier.XPRequired {
			current = tier
			if i+1 < len(XPLevels) {
				next = XPLevels[i+1]
			} else {
				next = tier
			}
		}
	}

	progress := 100
	if next.XPRequired > current.XPRequired {
		progress = clampPercent((xp - current.XPRequired) * 100 / (next.XPRequired - current.XPRequired))
	}
	return LevelInfo{
		Level:       current.Level,
		Title:       current.Title,
		NextLevel:   next.Level,
		NextLevelXP: next.XPRequired,
		Progress:    progress,
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
