// Package economy implements the bank commands: balances, transfers,
// daily claims, investments and account lifecycle.
package economy

import (
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Economy",
		Description: "Virtual bank with credits, transfers, daily rewards and investments",
		Commands: []commands.CommandInfo{
			{
				Name:        "bank",
				Aliases:     []string{"balance", "bal", "$"},
				Description: "Show an account summary",
				Usage:       ".bank [@user]",
			},
			{
				Name:        "open",
				Description: "Open a bank account",
				Usage:       ".open",
			},
			{
				Name:        "close",
				Description: "Close your account; it can be reopened later",
				Usage:       ".close",
			},
			{
				Name:        "reopen",
				Description: "Reopen your closed account",
				Usage:       ".reopen",
			},
			{
				Name:        "shutdown",
				Description: "Permanently shut down an account",
				Usage:       ".shutdown [@user]",
			},
			{
				Name:        "deleteaccount",
				Description: "Erase an account record and its ledger",
				Usage:       ".deleteaccount @user",
			},
			{
				Name:        "deposit",
				Description: "Add credits to an account",
				Usage:       ".deposit <amount> [@user]",
			},
			{
				Name:        "withdraw",
				Description: "Remove credits from an account",
				Usage:       ".withdraw <amount> [@user]",
			},
			{
				Name:        "transfer",
				Aliases:     []string{"pay", "give"},
				Description: "Transfer credits to another user",
				Usage:       ".transfer @user <amount>",
			},
			{
				Name:        "daily",
				Description: "Claim your daily credits",
				Usage:       ".daily",
			},
			{
				Name:        "invest",
				Description: "Start, stop or list investments",
				Usage:       ".invest <amount> | .invest stop <n> | .invest list",
			},
			{
				Name:        "history",
				Aliases:     []string{"ledger"},
				Description: "Browse an account's transaction history",
				Usage:       ".history [@user]",
			},
			{
				Name:        "leaderboard",
				Aliases:     []string{"lb", "top"},
				Description: "Browse the richest accounts on this server",
				Usage:       ".leaderboard",
			},
			{
				Name:        "authorize",
				Description: "Grant a user elevated bank operations",
				Usage:       ".authorize @user",
			},
			{
				Name:        "unauthorize",
				Description: "Revoke a user's elevated bank operations",
				Usage:       ".unauthorize @user",
			},
		},
	})
}

// targetUser resolves an optional mention argument to a user ID, falling
// back to the author when the argument is absent.
func targetUser(authorID string, args []string, idx int) (string, bool) {
	if len(args) <= idx {
		return authorID, true
	}
	id, err := utils.ExtractUserID(args[idx])
	if err != nil {
		return "", false
	}
	return id, true
}
