package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ErrRoleNotFound means no guild role matched the mention, ID or name.
var ErrRoleNotFound = errors.New("role not found")

// ExtractRoleID unwraps a <@&id> role mention; anything else is returned
// as-is for ID/name lookup.
func ExtractRoleID(input string) string {
	if strings.HasPrefix(input, "<@&") && strings.HasSuffix(input, ">") {
		return input[3 : len(input)-1]
	}
	return input
}

// FindRole resolves a role mention, ID or case-insensitive name.
func FindRole(s *discordgo.Session, guildID, roleInput string) (*discordgo.Role, error) {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetching guild roles: %w", err)
	}
	if role := matchRole(roles, roleInput); role != nil {
		return role, nil
	}
	return nil, ErrRoleNotFound
}

// matchRole tries the input as an ID first, then as a name.
func matchRole(roles []*discordgo.Role, input string) *discordgo.Role {
	cleaned := ExtractRoleID(input)
	for _, role := range roles {
		if role.ID == cleaned {
			return role
		}
	}
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))
	for _, role := range roles {
		if strings.ToLower(role.Name) == cleaned {
			return role
		}
	}
	return nil
}

// GetMutedRole returns the guild's Muted role, creating a permissionless
// one and denying it SendMessages/Speak everywhere when it doesn't exist.
func GetMutedRole(s *discordgo.Session, guildID string) (*discordgo.Role, error) {
	role, err := FindRole(s, guildID, "Muted")
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	muted, err := s.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        "Muted",
		Permissions: new(int64),
	})
	if err != nil {
		return nil, fmt.Errorf("creating muted role: %w", err)
	}

	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetching guild channels: %w", err)
	}
	for _, channel := range channels {
		deny := int64(discordgo.PermissionSendMessages)
		if channel.Type == discordgo.ChannelTypeGuildVoice {
			deny |= discordgo.PermissionVoiceSpeak
		}
		if err := s.ChannelPermissionSet(channel.ID, muted.ID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
			return nil, fmt.Errorf("restricting muted role in %s: %w", channel.ID, err)
		}
	}
	return muted, nil
}

// CheckPermission reports whether any of the member's roles carries the
// permission bit.
func CheckPermission(s *discordgo.Session, guildID, userID string, permission int64) (bool, error) {
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return false, fmt.Errorf("fetching member: %w", err)
	}
	guild, err := s.Guild(guildID)
	if err != nil {
		return false, fmt.Errorf("fetching guild: %w", err)
	}
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Permissions&permission != 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

func CheckKickMembersPermission(s *discordgo.Session, guildID, userID string) (bool, error) {
	return CheckPermission(s, guildID, userID, discordgo.PermissionKickMembers)
}

func CheckBanMembersPermission(s *discordgo.Session, guildID, userID string) (bool, error) {
	return CheckPermission(s, guildID, userID, discordgo.PermissionBanMembers)
}

func CheckMuteMembersPermission(s *discordgo.Session, guildID, userID string) (bool, error) {
	return CheckPermission(s, guildID, userID, discordgo.PermissionManageRoles)
}
