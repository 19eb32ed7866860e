package mailer

import "context"

// Notifier sends account emails. Callers invoke it fire-and-forget:
// a failure is logged and never fails the primary operation.
type Notifier interface {
	SendAccountCreated(ctx context.Context, name, email, password, roleLabel string) error
}
