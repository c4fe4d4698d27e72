package villager

// Trigger is an external notification forwarded by the event bridge
type Trigger string

const (
	TriggerPromptSubmit Trigger = "prompt_submit"
	TriggerStop         Trigger = "stop"
	TriggerInterrupt    Trigger = "interrupt"
)

// ParseTrigger validates an event type string
func ParseTrigger(s string) (Trigger, bool) {
	switch t := Trigger(s); t {
	case TriggerPromptSubmit, TriggerStop, TriggerInterrupt:
		return t, true
	default:
		return "", false
	}
}
