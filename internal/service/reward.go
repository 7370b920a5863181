package service

import "time"

// ComputeAward clamps a base reward against the remaining daily
// headroom: max(0, min(base, cap-earned)). Pure function; callers pass
// the already-reset daily counter.
func ComputeAward(baseReward, dailyEarned, dailyCap int64) int64 {
	if baseReward <= 0 {
		return 0
	}
	headroom := dailyCap - dailyEarned
	if headroom <= 0 {
		return 0
	}
	if baseReward < headroom {
		return baseReward
	}
	return headroom
}

// IsNewDay reports whether now falls on a later calendar day than
// lastReset. Calendar-day granularity, not a rolling 24h window.
func IsNewDay(lastReset, now time.Time) bool {
	ly, lm, ld := lastReset.Date()
	ny, nm, nd := now.Date()
	if ny != ly {
		return ny > ly
	}
	if nm != lm {
		return nm > lm
	}
	return nd > ld
}

// EffectiveDailyEarned returns the daily counter to use for award
// computation: zero when the reset date is stale.
func EffectiveDailyEarned(dailyEarned int64, lastReset, now time.Time) int64 {
	if IsNewDay(lastReset, now) {
		return 0
	}
	return dailyEarned
}
