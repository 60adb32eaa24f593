// Package delivery defines the contract every transport entry point honours.
package delivery

import "context"

// Delivery is a blocking server loop. Serve returns when the listener stops;
// shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
