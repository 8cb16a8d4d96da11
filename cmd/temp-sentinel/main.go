// Command temp-sentinel runs the temperature-monitoring controller against
// simulated hardware, with an optional HTTP telemetry surface.
package main

import "github.com/oshokin/temp-sentinel/cmd/temp-sentinel/cmd"

func main() {
	cmd.Execute()
}
