package main

import (
	"encoding/json"
	"io"

	"github.com/LordOfDragons/dragengine-sub060/config"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func toPointJSON(p vmath.DVector) pointJSON {
	return pointJSON{X: p.X, Y: p.Y, Z: p.Z}
}

// summary is printed after the demo ends
type summary struct {
	State   string          `json:"state"`
	Frames  int             `json:"frames"`
	Plans   int             `json:"plans"`
	Start   config.Cell     `json:"start"`
	Goal    config.Cell     `json:"goal"`
	Blocked int             `json:"blocked"`
	Agent   pointJSON       `json:"agent"`
	Path    []pointJSON     `json:"path"`
	Length  float64         `json:"path_length"`
	Metrics status.Snapshot `json:"metrics"`
}

func (d *demo) summary() summary {
	s := summary{
		State:   d.scene.State().String(),
		Frames:  d.frames,
		Plans:   d.scene.Plans(),
		Start:   d.scene.Start,
		Goal:    d.scene.Goal,
		Blocked: len(d.scene.Blocked),
		Agent:   toPointJSON(d.scene.Agent.Position()),
		Path:    make([]pointJSON, 0, d.scene.Path().Count()),
		Length:  d.scene.Path().Length(),
		Metrics: d.engine.Metrics().Snapshot(),
	}
	for _, p := range d.scene.Path().Points() {
		s.Path = append(s.Path, toPointJSON(p))
	}
	return s
}

func (d *demo) report(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.summary())
}
