package domain

// ShipState is the progress of a single run invocation.
type ShipState int

const (
	ShipIdle ShipState = iota
	ShipConnecting
	ShipConnected
	ShipSending
	ShipSent
	ShipConnectFailed
	ShipFailed
)

// String returns a human-readable representation of the state.
func (s ShipState) String() string {
	switch s {
	case ShipIdle:
		return "Idle"
	case ShipConnecting:
		return "Connecting"
	case ShipConnected:
		return "Connected"
	case ShipSending:
		return "Sending"
	case ShipSent:
		return "Sent"
	case ShipConnectFailed:
		return "ConnectFailed"
	case ShipFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s ShipState) Terminal() bool {
	return s == ShipSent || s == ShipConnectFailed || s == ShipFailed
}

// validShipTransitions lists allowed moves. There is no retry edge.
var validShipTransitions = map[ShipState][]ShipState{
	ShipIdle:       {ShipConnecting},
	ShipConnecting: {ShipConnected, ShipConnectFailed},
	ShipConnected:  {ShipSending, ShipSent, ShipFailed},
	ShipSending:    {ShipSending, ShipSent, ShipFailed},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to ShipState) bool {
	for _, s := range validShipTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
