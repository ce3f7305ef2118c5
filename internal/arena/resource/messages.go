package resource

import "github.com/enescakir/emoji"

// event log and system chat fragments
var (
	TextPlayerJoinedMsg    = "%s joined the room " + emoji.WavingHand.String()
	TextPlayerLeftMsg      = "%s disconnected " + emoji.ElectricPlug.String()
	TextPlayerRejoinedMsg  = "%s reconnected " + emoji.HighVoltage.String()
	TextHostChangedMsg     = emoji.Crown.String() + " %s is now the host"
	TextMatchStartedMsg    = emoji.Rocket.String() + " Match started! Warmup for %ds"
	TextMainPhaseMsg       = emoji.Fire.String() + " Warmup over, problems arrive faster now"
	TextMatchEndedMsg      = emoji.ChequeredFlag.String() + " Match over! %s wins with %d points"
	TextPlayerSolvedMsg    = "%s solved %q (+%d) " + emoji.PartyPopper.String()
	TextPlayerFailedMsg    = "%s failed a submit, streak lost"
	TextAttackLandedMsg    = emoji.CrossedSwords.String() + " %s hit %s with %s"
	TextEliminatedMsg      = emoji.Skull.String() + " %s was eliminated, stack overflow"
	TextBotsAddedMsg       = emoji.Robot.String() + " %d %s joined the lobby"
	TextReturnToLobbyMsg   = "Back to the lobby " + emoji.Door.String()
	TextBuffPurchasedMsg   = emoji.ShoppingCart.String() + " %s bought %s"
	TextGarbageDroppedMsg  = emoji.Wastebasket.String() + " %s dumped garbage on %s"
	TextSpectatorJoinedMsg = "%s is watching " + emoji.Eyes.String()
)

// labels shown for attack kinds in the event log
var AttackLabels = map[string]string{
	"ddos":        emoji.SatelliteAntenna.String() + " DDoS",
	"vimLock":     emoji.Locked.String() + " Vim Lock",
	"flashbang":   emoji.HighVoltage.String() + " Flashbang",
	"memoryLeak":  emoji.DropOfBlood.String() + " Memory Leak",
	"garbageDrop": emoji.Wastebasket.String() + " Garbage Drop",
}

// labels for shop items
var ShopLabels = map[string]string{
	"clearDebuff":  "debuff cleanse",
	"memoryDefrag": "memory defrag",
	"skipProblem":  "problem skip",
	"rateLimiter":  "rate limiter",
	"hint":         "hint",
}

// BotNames seed the generated bot usernames; the join counter is appended once
// the list is exhausted.
var BotNames = []string{
	"segfault", "nullptr", "offbyone", "deadlock", "bigO",
	"raceCond", "coredump", "heisenbug", "stackghost", "forkbomb",
}
