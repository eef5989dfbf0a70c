package commands

import (
	"errors"
	"fmt"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

// UserError renders a domain error as a chat message. Cooldowns show the
// remaining wait; everything else uses the error's own text.
func UserError(err error) string {
	var cd *bank.CooldownError
	if errors.As(err, &cd) {
		return fmt.Sprintf("Your %s is on cooldown. Try again in %s.", cd.Op, utils.FormatDuration(cd.Remaining))
	}
	return "Sorry, " + err.Error() + "."
}
