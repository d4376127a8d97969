package notifier

// Client reports migration progress to an out-of-band channel so a
// long-running import can be watched from a phone. Delivery is best effort;
// failures are logged, never propagated.
type Client interface {
	Notify(text string)
}
