package model

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"roomscan-viewer/internal/mesh"
)

// objMaterial is one material definition from an MTL file.
type objMaterial struct {
	Diffuse [3]float64
	TexPath string // absolute path to map_Kd, "" if none
}

// loadOBJ parses a Wavefront OBJ file into one mesh per material group.
// Material loading is best-effort: a missing or unreadable MTL file is
// logged and geometry loading continues untextured.
func loadOBJ(path string, withMaterials bool) ([]mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		vs  [][3]float32
		vts [][2]float32
		vns [][3]float32

		materials = map[string]objMaterial{}
		current   = "" // active usemtl name
		groups    = map[string]*mesh.Mesh{}
		order     []string
	)

	group := func(name string) *mesh.Mesh {
		if m, ok := groups[name]; ok {
			return m
		}
		m := &mesh.Mesh{Diffuse: [3]float64{0.63, 0.63, 0.67}}
		if mat, ok := materials[name]; ok {
			m.Diffuse = mat.Diffuse
			m.TexPath = mat.TexPath
		}
		groups[name] = m
		order = append(order, name)
		return m
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "mtllib":
			if !withMaterials || len(fields) < 2 {
				continue
			}
			mtlPath := filepath.Join(filepath.Dir(path), fields[1])
			mats, err := loadMTL(mtlPath)
			if err != nil {
				log.Printf("model: materials unavailable for %s: %v", filepath.Base(path), err)
				continue
			}
			for name, mat := range mats {
				materials[name] = mat
			}
		case "usemtl":
			if len(fields) > 1 {
				current = fields[1]
			}
		case "v":
			if len(fields) < 4 {
				continue
			}
			vs = append(vs, [3]float32{pf32(fields[1]), pf32(fields[2]), pf32(fields[3])})
		case "vt":
			if len(fields) < 3 {
				continue
			}
			// OBJ UVs have V pointing up; the sampler expects V down.
			vts = append(vts, [2]float32{pf32(fields[1]), 1 - pf32(fields[2])})
		case "vn":
			if len(fields) < 4 {
				continue
			}
			vns = append(vns, [3]float32{pf32(fields[1]), pf32(fields[2]), pf32(fields[3])})
		case "f":
			m := group(current)
			addFace(m, fields[1:], vs, vts, vns)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}

	var out []mesh.Mesh
	for _, name := range order {
		if len(groups[name].Tris) > 0 {
			out = append(out, *groups[name])
		}
	}
	return out, nil
}

// addFace fan-triangulates one face directive, copying referenced attributes
// into the group's local arrays so each mesh is self-contained.
func addFace(m *mesh.Mesh, args []string, vs [][3]float32, vts [][2]float32, vns [][3]float32) {
	n := len(args)
	if n < 3 {
		return
	}

	vi := make([]int, n)
	ti := make([]int, n)
	ni := make([]int, n)
	for i, s := range args {
		parts := strings.Split(s, "/")
		vi[i] = objIndex(parts[0], len(vs))
		if len(parts) > 1 && parts[1] != "" {
			ti[i] = objIndex(parts[1], len(vts))
		} else {
			ti[i] = -1
		}
		if len(parts) > 2 && parts[2] != "" {
			ni[i] = objIndex(parts[2], len(vns))
		} else {
			ni[i] = -1
		}
	}

	emit := func(k int) (int, int, int) {
		v, t, nn := vi[k], ti[k], ni[k]
		idx := len(m.Verts)
		if v >= 0 && v < len(vs) {
			m.Verts = append(m.Verts, vs[v])
		} else {
			m.Verts = append(m.Verts, [3]float32{})
		}
		tIdx := -1
		if t >= 0 && t < len(vts) {
			tIdx = len(m.UVs)
			m.UVs = append(m.UVs, vts[t])
		}
		nIdx := -1
		if nn >= 0 && nn < len(vns) {
			nIdx = len(m.Normals)
			m.Normals = append(m.Normals, vns[nn])
		}
		return idx, tIdx, nIdx
	}

	// Fan triangulation: (0, i, i+1)
	for i := 1; i < n-1; i++ {
		var tri mesh.Triangle
		for j, k := range [3]int{0, i, i + 1} {
			v, t, nn := emit(k)
			tri.VI[j] = v
			tri.TI[j] = t
			tri.NI[j] = nn
		}
		m.Tris = append(m.Tris, tri)
	}
}

// loadMTL parses the subset of MTL this viewer uses: Kd and map_Kd.
func loadMTL(path string) (map[string]objMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open mtl %s: %w", path, err)
	}
	defer f.Close()

	mats := map[string]objMaterial{}
	current := ""
	dir := filepath.Dir(path)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				current = fields[1]
				mats[current] = objMaterial{Diffuse: [3]float64{0.8, 0.8, 0.8}}
			}
		case "Kd":
			if current == "" || len(fields) < 4 {
				continue
			}
			m := mats[current]
			m.Diffuse = [3]float64{pf(fields[1]), pf(fields[2]), pf(fields[3])}
			mats[current] = m
		case "map_Kd":
			if current == "" || len(fields) < 2 {
				continue
			}
			m := mats[current]
			// Texture path is the last field; options like -s are not supported.
			tex := fields[len(fields)-1]
			if !filepath.IsAbs(tex) {
				tex = filepath.Join(dir, filepath.FromSlash(tex))
			}
			m.TexPath = tex
			mats[current] = m
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("model: read mtl %s: %w", path, err)
	}
	return mats, nil
}

// objIndex converts a 1-based (or negative, from-end) OBJ index to 0-based.
func objIndex(s string, n int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	if i > 0 {
		return i - 1
	}
	if i < 0 {
		return n + i
	}
	return -1
}

func pf(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func pf32(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}
