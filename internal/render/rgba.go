package render

// AppendRGBA expands the indexed framebuffer through the active palette
// into dst and returns it. For sinks without a palette lookup stage:
// the preview server and PNG export use it; a GPU sink should sample the
// indexed buffer through Palette instead.
func (r *Renderer) AppendRGBA(dst []byte) []byte {
	need := len(r.fb) * 4
	if cap(dst) < need {
		dst = make([]byte, 0, need)
	}
	dst = dst[:need]

	di := 0
	for _, idx := range r.fb {
		o := int(idx) * 4
		dst[di] = r.palette[o]
		dst[di+1] = r.palette[o+1]
		dst[di+2] = r.palette[o+2]
		dst[di+3] = r.palette[o+3]
		di += 4
	}
	return dst
}
