// Package utils holds small helpers shared by the command modules:
// mention parsing, role lookups, currency and duration formatting, and a
// per-user command rate limiter.
package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ExtractUserID parses a <@id> or <@!id> mention into a snowflake ID.
func ExtractUserID(mention string) (string, error) {
	if !strings.HasPrefix(mention, "<@") || !strings.HasSuffix(mention, ">") {
		return "", fmt.Errorf("invalid mention format")
	}
	userID := strings.TrimPrefix(strings.TrimSuffix(mention, ">"), "<@")
	userID = strings.TrimPrefix(userID, "!")

	// Must be a valid snowflake
	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		return "", fmt.Errorf("invalid user ID")
	}
	return userID, nil
}

// UserExists asks Discord whether the ID resolves to a real user.
func UserExists(s *discordgo.Session, userID string) (bool, error) {
	_, err := s.User(userID)
	if err != nil {
		if strings.Contains(err.Error(), "Unknown User") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
