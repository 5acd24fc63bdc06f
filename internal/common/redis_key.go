package common

import (
	"fmt"
	"strings"
)

func RedisKeyGuildLeaderboard(guildID string) string {
	return fmt.Sprintf("guildboard:%s", guildID)
}

func RedisValueLeaderboard(name, userID string) string {
	return fmt.Sprintf("%s***%s", name, userID)
}

func FromRedisValueLeaderboard(value string) (string, string) {
	parts := strings.Split(value, "***")
	return parts[0], parts[1]
}
