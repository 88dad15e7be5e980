package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leanviz/layout3d/internal/graph"
	"github.com/leanviz/layout3d/internal/vec"
)

// SVG renders an orthographic XY projection of the layout as an SVG
// document: edges as lines, nodes as dots. Depth (Z) modulates dot
// radius slightly so the projection keeps some sense of the third
// axis. Meant for quick inspection, not for the real renderer.
func SVG(positions map[string]vec.Vec3, edges []graph.Edge, width, height int) string {
	if len(positions) == 0 {
		return ""
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	first := positions[ids[0]]
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	minZ, maxZ := first.Z, first.Z
	for _, id := range ids[1:] {
		p := positions[id]
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}

	margin := 20.0
	spanX, spanY, spanZ := maxX-minX, maxY-minY, maxZ-minZ
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	if spanZ == 0 {
		spanZ = 1
	}
	sx := (float64(width) - 2*margin) / spanX
	sy := (float64(height) - 2*margin) / spanY

	project := func(p vec.Vec3) (float64, float64) {
		return margin + (p.X-minX)*sx, margin + (p.Y-minY)*sy
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<g stroke="#335577" stroke-width="0.5">` + "\n")
	for _, e := range edges {
		ps, ok := positions[e.Source]
		if !ok {
			continue
		}
		pt, ok := positions[e.Target]
		if !ok {
			continue
		}
		x1, y1 := project(ps)
		x2, y2 := project(pt)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="#66ccff">` + "\n")
	for _, id := range ids {
		p := positions[id]
		x, y := project(p)
		r := 1.5 + 1.5*(p.Z-minZ)/spanZ
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"><title>%s</title></circle>`+"\n", x, y, r, escape(id)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
