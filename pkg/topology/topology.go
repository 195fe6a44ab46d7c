package topology

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/camdiagram/pkg/diagram"
)

// Mode selects which view of the system to draw.
type Mode string

const (
	ModeApp   Mode = "app"
	ModeInfra Mode = "infra"
)

// Modes returns every mode in generation order.
func Modes() []Mode { return []Mode{ModeApp, ModeInfra} }

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeApp, ModeInfra:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode: %s (must be 'app' or 'infra')", s)
}

// Title returns the diagram title of the mode.
func (m Mode) Title() string {
	if m == ModeInfra {
		return "Infrastructure"
	}
	return "System Architecture"
}

// Filename returns the output file stem of the mode.
func (m Mode) Filename() string { return "system_" + string(m) }

// Direction returns the layout direction of the mode. The application view
// reads left to right; the infrastructure view stacks physical tiers top to
// bottom.
func (m Mode) Direction() diagram.Direction {
	if m == ModeInfra {
		return diagram.TopToBottom
	}
	return diagram.LeftToRight
}

// CameraIcon is the file name of the camera body icon inside the icon directory.
const CameraIcon = "camera.png"

// Options configures [Build].
type Options struct {
	// IconDir holds custom node icons. Missing icons fall back to the node
	// kind's built-in look.
	IconDir string
}

// GraphAttrs are the graph attributes shared by both views. Rank and node
// separation are wide so edge labels stay readable.
func GraphAttrs() diagram.Attrs {
	return diagram.Attrs{
		"fontsize": "20",
		"bgcolor":  "white",
		"pad":      "1.5",
		"fontname": "Helvetica",
		"splines":  "spline",
		"ranksep":  "2.2",
		"nodesep":  "1.6",
	}
}

// NodeAttrs are the node attributes shared by both views.
func NodeAttrs() diagram.Attrs {
	return diagram.Attrs{"fontsize": "14"}
}

var sameRank = diagram.Attrs{"rank": "same"}

// Build declares the diagram for mode.
func Build(mode Mode, opts Options) (*diagram.Diagram, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	d := diagram.New(mode.Title(),
		diagram.WithFilename(mode.Filename()),
		diagram.WithDirection(mode.Direction()),
		diagram.WithGraphAttrs(GraphAttrs()),
		diagram.WithNodeAttrs(NodeAttrs()),
	)

	if mode == ModeInfra {
		buildInfra(d)
		return d, nil
	}
	if err := buildApp(d, filepath.Join(opts.IconDir, CameraIcon)); err != nil {
		return nil, err
	}
	return d, nil
}

// buildInfra declares the physical view: each service sits inside the board or
// cluster that hosts it. No connectors are drawn.
func buildInfra(d *diagram.Diagram) {
	d.Cluster("People", nil).Node(diagram.KindUser, "Operator")

	light := d.Cluster("Camera (Lightweight Mode)", sameRank)
	arduinoLight := light.Cluster("Arduino (Lightweight)", nil)
	arduinoLight.Node(diagram.KindServer, "Arduino")
	arduinoLight.Node(diagram.KindTablet, "CD")
	arduinoLight.Node(diagram.KindServer, "CO")

	auto := d.Cluster("Camera (Autonomous Mode)", sameRank)
	rasp := auto.Cluster("Raspberry Pi", nil)
	rasp.Node(diagram.KindServer, "raspberry pi")
	rasp.Node(diagram.KindServer, "k3s")
	rasp.Node(diagram.KindTablet, "CD (Autonomous)")
	rasp.Node(diagram.KindPython, "FD (Autonomous)")
	arduinoAuto := auto.Cluster("Arduino (Autonomous)", nil)
	arduinoAuto.Node(diagram.KindServer, "Arduino")
	arduinoAuto.Node(diagram.KindServer, "CO (Autonomous)")

	master := d.Cluster("Master MF", sameRank)
	k8s := master.Cluster("k8s Cluster (Master MF)", nil)
	k8s.Node(diagram.KindServer, "k8s Node(s)")
	k8s.Node(diagram.KindGo, "CR")
	k8s.Node(diagram.KindServer, "RS")
	k8s.Node(diagram.KindReact, "EP")
	k8s.Node(diagram.KindPython, "MD")
	k8s.Node(diagram.KindPython, "FD")

	d.Cluster("Streaming PC", nil).Node(diagram.KindClient, "Streaming terminal")
}

// buildApp declares the logical view with every role described and all
// connectors drawn.
func buildApp(d *diagram.Diagram, cameraIcon string) error {
	person := d.Cluster("People", nil).
		Node(diagram.KindUser, "Operator\n(human operator who runs the whole system)")

	light := d.Cluster("Camera (Lightweight Mode)", sameRank)
	camera := light.Custom("Camera body\n(physical camera that shoots)", cameraIcon)
	cd := light.Node(diagram.KindTablet, "CD\n(capture device bringing the camera feed into the system)")
	co := light.Node(diagram.KindServer, "CO\n(camera microcontroller driving PTZ and arm)")

	auto := d.Cluster("Camera (Autonomous Mode)", sameRank)
	cameraAuto := auto.Custom("Camera body\n(physical camera in Autonomous Mode)", cameraIcon)
	cdAuto := auto.Node(diagram.KindTablet, "CD (Autonomous)\n(capture device in Autonomous Mode)")
	coAuto := auto.Node(diagram.KindServer, "CO (Autonomous)\n(camera microcontroller in Autonomous Mode)")
	fdAuto := auto.Node(diagram.KindPython, "FD (Autonomous)\n(FD resident on the camera in Autonomous Mode)")

	master := d.Cluster("Master MF", sameRank)
	cr := master.Node(diagram.KindGo, "CR\n(master server coordinating all communication)")
	rs := master.Node(diagram.KindServer, "RS\n(relay station: WebRTC master and relay)")
	ep := master.Node(diagram.KindReact, "EP\n(browser UI controlling MD)")
	md := master.Node(diagram.KindPython, "MD\n(main director managing cinematography and distribution)")
	fd := master.Node(diagram.KindPython, "FD\n(film director computing framing from MD and driving CO)")

	pc := d.Cluster("Streaming PC", nil).
		Node(diagram.KindClient, "Streaming terminal\n(PC, laptop, mixer or other streaming gear)")

	w := wiring{d: d}

	w.link(person, ep, OperationEdge())
	w.link(camera, cd, WebRTCVideoEdge())
	w.link(cd, rs, SignalingEdge())

	w.link(rs, md, SignalingEdge(LabelSignaling))
	w.link(rs, fd, SignalingEdge(LabelSignaling))
	w.link(rs, ep, SignalingEdge(LabelSignaling))

	w.link(cd, md, WebRTCVideoEdge())
	w.link(cd, fd, WebRTCVideoEdge())
	w.link(cd, ep, WebRTCVideoEdge())

	w.link(ep, cr, ConnectEdge())
	w.link(cd, cr, ConnectEdge())
	w.link(md, cr, ConnectEdge())
	w.link(fd, cr, ConnectEdge())

	w.link(md, fd, CollaborationEdge())

	// Lightweight Mode: MD streams out, FD drives the camera controller.
	w.link(md, pc, VideoEdge())
	w.link(fd, co, ControlEdge())

	// Autonomous Mode
	w.link(cameraAuto, cdAuto, WebRTCVideoEdge())
	w.link(cdAuto, rs, SignalingEdge())
	w.link(rs, fdAuto, SignalingEdge(LabelSignaling))

	w.link(cdAuto, md, WebRTCVideoEdge())
	w.link(cdAuto, fdAuto, WebRTCVideoEdge())
	w.link(cdAuto, ep, WebRTCVideoEdge())

	w.link(cdAuto, cr, ConnectEdge())
	w.link(fdAuto, cr, ConnectEdge())

	w.link(md, fdAuto, CollaborationEdge())
	w.link(fdAuto, coAuto, ControlEdge())

	return w.err
}

// wiring records the first connection error so the edge list reads as a flat
// declaration.
type wiring struct {
	d   *diagram.Diagram
	err error
}

func (w *wiring) link(from, to *diagram.Node, e diagram.Edge) {
	if w.err != nil {
		return
	}
	w.err = w.d.Connect(from, to, e)
}
