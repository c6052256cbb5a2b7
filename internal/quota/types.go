package quota

// Endpoints recorded in api_usage.
const (
	EndpointIntent       = "intent_extraction"
	EndpointVerification = "image_verification"
)

// RecordInput describes one finished model call.
type RecordInput struct {
	Endpoint string
	Tokens   int
}
