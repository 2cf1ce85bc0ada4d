package domain

import (
	"go.trai.ch/zerr"
)

// graph6 is the standard ASCII encoding for simple undirected graphs: the
// vertex count followed by the upper triangle of the adjacency matrix in
// column order, six bits per character, offset by 63. It is the persisted
// representation of basis generators, so encode/decode must round-trip
// bit-for-bit.

// Graph6 encodes the graph as a graph6 string.
func (g Graph) Graph6() string {
	var out []byte
	switch {
	case g.n <= 62:
		out = append(out, byte(g.n+63))
	default:
		// Three-character size for 63 <= n <= 258047.
		out = append(out, 126,
			byte((g.n>>12)&63)+63,
			byte((g.n>>6)&63)+63,
			byte(g.n&63)+63)
	}

	nbits := g.n * (g.n - 1) / 2
	bits := make([]bool, nbits)
	for _, e := range g.edges {
		// Bit position of cell (i,j), i<j, in column order.
		bits[e.V*(e.V-1)/2+e.U] = true
	}
	for i := 0; i < nbits; i += 6 {
		var c byte
		for k := 0; k < 6; k++ {
			c <<= 1
			if i+k < nbits && bits[i+k] {
				c |= 1
			}
		}
		out = append(out, c+63)
	}
	return string(out)
}

// ParseGraph6 decodes a graph6 string.
func ParseGraph6(s string) (Graph, error) {
	data := []byte(s)
	if len(data) == 0 {
		return Graph{}, zerr.Wrap(ErrMalformedGraph6, "empty input")
	}
	var n int
	switch {
	case data[0] == 126:
		if len(data) < 4 {
			return Graph{}, zerr.Wrap(ErrMalformedGraph6, "truncated size")
		}
		n = int(data[1]-63)<<12 | int(data[2]-63)<<6 | int(data[3]-63)
		data = data[4:]
	default:
		if data[0] < 63 || data[0] > 125 {
			return Graph{}, zerr.Wrap(ErrMalformedGraph6, "invalid size byte")
		}
		n = int(data[0] - 63)
		data = data[1:]
	}

	nbits := n * (n - 1) / 2
	if len(data) != (nbits+5)/6 {
		return Graph{}, zerr.Wrap(ErrMalformedGraph6, "wrong payload length")
	}

	var edges []Edge
	for pos := 0; pos < nbits; pos++ {
		c := data[pos/6]
		if c < 63 || c > 126 {
			return Graph{}, zerr.Wrap(ErrMalformedGraph6, "invalid payload byte")
		}
		bit := (c - 63) >> (5 - pos%6) & 1
		if bit == 1 {
			// Invert pos = v(v-1)/2 + u.
			v := 1
			for (v+1)*v/2 <= pos {
				v++
			}
			u := pos - v*(v-1)/2
			edges = append(edges, Edge{U: u, V: v})
		}
	}
	return NewGraph(n, edges)
}
