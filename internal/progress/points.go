package progress

// PointsPerLevel is how many points advance the user one level.
const PointsPerLevel = 100

// Level computes the level for a point total. Levels start at 1 and
// advance every PointsPerLevel points, so 0-99 is level 1, 100-199 is
// level 2, and so on.
func Level(totalPoints int64) int {
	if totalPoints < 0 {
		return 1
	}
	return int(totalPoints/PointsPerLevel) + 1
}

// PointsToNextLevel returns how many points remain until the next level.
func PointsToNextLevel(totalPoints int64) int64 {
	if totalPoints < 0 {
		return PointsPerLevel
	}
	return PointsPerLevel - (totalPoints % PointsPerLevel)
}

// LevelProgress returns the fraction of the current level completed,
// in [0, 1).
func LevelProgress(totalPoints int64) float64 {
	if totalPoints < 0 {
		return 0
	}
	return float64(totalPoints%PointsPerLevel) / float64(PointsPerLevel)
}

// ExercisePoints is the point award for an exercise result: ten points
// per correct answer.
func ExercisePoints(score int) int64 {
	if score < 0 {
		return 0
	}
	return int64(score) * 10
}

// ExamPoints is the point award for an exam result: the score percentage
// rounded to the nearest ten. A 73% exam awards 70 points.
func ExamPoints(score, totalPoints int) int64 {
	if totalPoints <= 0 || score < 0 {
		return 0
	}
	pct := float64(score) / float64(totalPoints) * 100
	return int64(pct/10+0.5) * 10
}

// MarkLearnedPoints is the fixed award for marking a word as learned.
const MarkLearnedPoints = 5

// SignupPoints is the starting balance granted at registration.
const SignupPoints = 10
