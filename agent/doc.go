// Package agent implements the grounded chat loop.
//
// Each chat call runs a bounded plan/tool cycle: the model is offered a
// small set of tools that query the session's in-memory place and video
// data, tool results are fed back, and the cycle repeats until the
// model produces a final answer or the round cap forces one. Final
// answers cite places with inline [place:ID] markers; the markers are
// validated against the session and stripped from the returned text.
package agent
