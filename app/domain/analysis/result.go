package analysis

// Spatial zones reported by the detector. The zone names are part of the wire
// contract consumed by the voice clients and stay in Spanish.
const (
	PositionLeft    = "izquierda"
	PositionCenter  = "centro"
	PositionRight   = "derecha"
	PositionUnknown = "desconocida"
)

// LabelUnknown is the placeholder label carried by degraded results.
const LabelUnknown = "desconocido"

// DetectedObject is a single detection record inside a Result.
type DetectedObject struct {
	Label      string  `json:"label"`
	Position   string  `json:"position"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color,omitempty"`
}

// Result is the outcome of running one image through the pipeline. It is
// immutable once produced: the same value is shared by the cache and by every
// broadcast recipient.
type Result struct {
	DetectedObjects []DetectedObject `json:"detected_objects"`
	Description     string           `json:"description,omitempty"`
	DetectedText    string           `json:"detected_text,omitempty"`
	ClientID        string           `json:"client_id,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// DegradedResult builds the placeholder result used whenever the pipeline or
// the frame decoding fails: a single unknown object plus an error marker.
func DegradedResult(message string) *Result {
	return &Result{
		DetectedObjects: []DetectedObject{
			{Label: LabelUnknown, Position: PositionUnknown, Confidence: 0},
		},
		Error: message,
	}
}

// ForClient returns a copy of the result stamped with the client identity it
// is delivered under. The receiver is never mutated, so cached results stay
// safe to share across client groups.
func (r *Result) ForClient(clientID string) *Result {
	stamped := *r
	stamped.ClientID = clientID
	return &stamped
}
