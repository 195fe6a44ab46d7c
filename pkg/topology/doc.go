// Package topology declares the camera and streaming system diagrams.
//
// Two views of the same system are produced by [Build]:
//
//   - [ModeApp]: the logical application view, flowing left to right, with
//     every component labeled by its role and 26 styled connectors.
//   - [ModeInfra]: the physical infrastructure view, flowing top to bottom,
//     with services grouped by the board or cluster they run on and no
//     connectors at all.
//
// Connector styles are fixed per traffic class; see [VideoEdge],
// [SignalingEdge], [WebRTCVideoEdge], [ConnectEdge] and friends.
package topology
