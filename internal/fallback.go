package internal

// Flow identifies which chat surface produced an exchange
type Flow string

const (
	FlowChat       Flow = "chat"
	FlowMultiModal Flow = "multimodal"
)

// Fixed offline wording, one per flow.
const (
	ChatOfflineReply = "I'm currently offline and can't reach the advisory service. " +
		"Please check your internet connection and try again. " +
		"In the meantime you can still browse saved market prices and your earlier profit analyses."

	MultiModalOfflineReply = "I'm unable to connect to the advisory service right now. " +
		"For suspected plant diseases, isolate the affected plants, remove badly damaged leaves " +
		"and contact your local agricultural extension officer. " +
		"Please resend your question or photo once you are back online."

	RecommendationOfflineAdvice = "Crop recommendations need the advisory service, which is unreachable right now. " +
		"Ask your local agricultural extension officer about crops suited to your soil, or try again once you are back online."

	// OfflineNotice is the single user-facing notice shown for a failed send
	OfflineNotice = "You appear to be offline. Showing an offline response."
)

// OfflineReply returns the locally synthesized assistant text for a failed
// send. The result depends only on the flow.
func OfflineReply(flow Flow, _ *Failure) string {
	if flow == FlowMultiModal {
		return MultiModalOfflineReply
	}
	return ChatOfflineReply
}
