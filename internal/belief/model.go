package belief

// Motion holds the transition-model parameters: probability of moving as
// intended, staying put, and slipping to an unintended neighbour.
// PCorrect + PStay + PSlip must sum to 1 (validated by internal/config).
type Motion struct {
	PCorrect float64
	PStay    float64
	PSlip    float64
}

// DefaultMotion matches spec.md §4.3's p_c=0.8, p_s=0.1, p_w=0.1.
var DefaultMotion = Motion{PCorrect: 0.8, PStay: 0.1, PSlip: 0.1}

// Sensor holds the emission-model parameters: probability of sensing the
// true room, an adjacent room, or "unknown".
type Sensor struct {
	PCorrect  float64
	PAdjacent float64
	PUnknown  float64
}

// DefaultSensor matches spec.md §4.3's q_c=0.7, q_a=0.15, q_u=0.15.
var DefaultSensor = Sensor{PCorrect: 0.7, PAdjacent: 0.15, PUnknown: 0.15}

// Observation is a sensor reading. The closed set is
// {<room>_sensed..., unknown_sensed, action_succeeded, action_failed}.
type Observation string

const (
	UnknownSensed    Observation = "unknown_sensed"
	ActionSucceeded  Observation = "action_succeeded"
	ActionFailed     Observation = "action_failed"
	roomSensedSuffix             = "_sensed"
)

// RoomSensed builds the observation token for a room tag.
func RoomSensed(room string) Observation {
	return Observation(room + roomSensedSuffix)
}
