package match

// Command is the closed set of inbound operations a session accepts. The
// dispatcher type-switches over every variant; the sealed marker keeps foreign
// types out of the set.
type Command interface {
	isCommand()
}

// connection lifecycle

// Resume binds an established connection to the player owning the token.
type Resume struct {
	Token  string
	ConnID string
}

// Disconnect reports a lost connection; host reassignment happens in the same
// synchronous step.
type Disconnect struct {
	ConnID string
}

// lobby commands

type UpdateSettings struct {
	Settings Settings
}

type StartMatch struct{}

type ReturnToLobby struct{}

type AddBots struct {
	Count int
}

// gameplay commands

type SendChat struct {
	Text string
}

type RunCode struct {
	Code string
}

type SubmitCode struct {
	Code string
}

type SpendPoints struct {
	Item ShopItem
}

type SetTargetingMode struct {
	Mode TargetingMode
}

type SpectatePlayer struct {
	PlayerID string
}

type StopSpectate struct{}

// CodeUpdate is the streaming editor relay; stale versions are dropped.
type CodeUpdate struct {
	Code    string
	Version int
}

func (Resume) isCommand()           {}
func (Disconnect) isCommand()       {}
func (UpdateSettings) isCommand()   {}
func (StartMatch) isCommand()       {}
func (ReturnToLobby) isCommand()    {}
func (AddBots) isCommand()          {}
func (SendChat) isCommand()         {}
func (RunCode) isCommand()          {}
func (SubmitCode) isCommand()       {}
func (SpendPoints) isCommand()      {}
func (SetTargetingMode) isCommand() {}
func (SpectatePlayer) isCommand()   {}
func (StopSpectate) isCommand()     {}
func (CodeUpdate) isCommand()       {}
