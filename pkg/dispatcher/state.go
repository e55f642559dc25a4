package dispatcher

import "fmt"

// State is the dispatcher's position in the bootstrap protocol
type State int

const (
	Unbuilt State = iota
	Registering
	Dispatched
	APIPublishing
	Steady
)

var stateNames = map[State]string{
	Unbuilt:       "Unbuilt",
	Registering:   "Registering",
	Dispatched:    "Dispatched",
	APIPublishing: "ApiPublishing",
	Steady:        "Steady",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}
