// Package notifier formats reports and delivers them over Telegram and
// Bark push channels.
package notifier

import "log"

// Notifier is the minimal delivery contract used by the scheduler.
type Notifier interface {
	Send(text string) error
}

// NoopNotifier logs messages instead of delivering them. Used when no
// channel is configured so runs still complete.
type NoopNotifier struct{}

// Send logs the message locally.
func (NoopNotifier) Send(text string) error {
	log.Printf("[INFO] notification (no channel configured):\n%s", text)
	return nil
}
