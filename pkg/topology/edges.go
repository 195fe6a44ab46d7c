package topology

import "github.com/matzehuels/camdiagram/pkg/diagram"

// Connector colors, from the Tableau 10 palette.
const (
	colorBlue   = "#1f77b4"
	colorOrange = "#ff7f0e"
	colorGreen  = "#2ca02c"
	colorPurple = "#9467bd"
	colorTeal   = "#17becf"
)

const penWidth = 2

// Default connector labels.
const (
	LabelVideo         = "Video"
	LabelWebRTC        = "WebRTC"
	LabelSignalingTURN = "Signaling/TURN"
	LabelSignaling     = "Signaling"
	LabelWebRTCVideo   = "WebRTC (Video)"
	LabelControl       = "Control"
	LabelConnect       = "Connect Protocol"
	LabelOperation     = "Operation"
	LabelCollaboration = "Collaboration"
)

func styled(label, color, style string, dir diagram.Dir) diagram.Edge {
	return diagram.Edge{
		Label:     label,
		Color:     color,
		FontColor: color,
		Style:     style,
		PenWidth:  penWidth,
		Dir:       dir,
	}
}

func orDefault(label []string, def string) string {
	if len(label) > 0 {
		return label[0]
	}
	return def
}

// VideoEdge is a plain video feed (blue).
func VideoEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelVideo), colorBlue, "", diagram.DirForward)
}

// WebRTCEdge is a WebRTC session (orange).
func WebRTCEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelWebRTC), colorOrange, "", diagram.DirForward)
}

// SignalingEdge carries WebRTC signaling or TURN control traffic (orange, dashed).
func SignalingEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelSignalingTURN), colorOrange, "dashed", diagram.DirForward)
}

// WebRTCVideoEdge is video delivered over WebRTC (purple).
func WebRTCVideoEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelWebRTCVideo), colorPurple, "", diagram.DirForward)
}

// ControlEdge is a control path that actually exchanges data (green).
func ControlEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelControl), colorGreen, "", diagram.DirForward)
}

// ConnectEdge is control or data over the Connect protocol (teal).
func ConnectEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelConnect), colorTeal, "", diagram.DirForward)
}

// OperationEdge is a human operating a UI (green, dashed).
func OperationEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelOperation), colorGreen, "dashed", diagram.DirForward)
}

// CollaborationEdge is a two-way collaboration (green, arrows on both ends).
func CollaborationEdge(label ...string) diagram.Edge {
	return styled(orDefault(label, LabelCollaboration), colorGreen, "", diagram.DirBoth)
}
