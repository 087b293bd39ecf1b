package notification

import "context"

// Transport defines an interface for delivering a rendered message to its
// recipient. This decouples the application logic from the specific mail
// library. Implementations enforce their own per-attempt timeout.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}
