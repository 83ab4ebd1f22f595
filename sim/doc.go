// Package sim is simulated hardware for running the controller on a host:
// the audio codec, the link codec and the front panel GPIO, wired to the
// software DSP engines.
package sim
