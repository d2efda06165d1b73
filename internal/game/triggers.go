package game

// Trigger names a moment the lighting and audio collaborators react to. The
// engines only ever emit the name; performing the effect is someone else's
// job.
type Trigger string

const (
	TriggerCheckout    Trigger = "checkout"
	TriggerBust        Trigger = "bust"
	TriggerOneEighty   Trigger = "180"
	TriggerElimination Trigger = "elimination"
	TriggerWin         Trigger = "win"
	TriggerJailbreak   Trigger = "jailbreak"
	TriggerBackfire    Trigger = "backfire"
)
