package storage

// RunScore ranks a finished run: the purse, plus the hero's remaining
// health when the dungeon was cleared.
func RunScore(won bool, coins, heroHealth int) int {
	if coins < 0 {
		coins = 0
	}
	if !won || heroHealth < 0 {
		return coins
	}
	return coins + heroHealth
}
