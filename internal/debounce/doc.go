// Package debounce implements the one-shot alert settle timer.
//
// A fresh timer is armed each time the alert task consumes a notification;
// it is never canceled or re-armed mid-flight. On expiry it clears the
// alert flag, then re-enables the interrupt only if the latest reading sits
// below the threshold. An above-threshold firing leaves the interrupt
// disabled while the flag already reads clear; that asymmetry is inherited
// behavior and is kept deliberately.
package debounce
